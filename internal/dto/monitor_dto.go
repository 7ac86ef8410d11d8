package dto

import "github.com/google/uuid"

type SimulateRequest struct {
	Mode string `json:"mode"`
}

type ReadingResponse struct {
	ID        uuid.UUID `json:"id"`
	Ts        string    `json:"ts"`
	Bpm       int       `json:"bpm"`
	Label     *int      `json:"label,omitempty"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
}

type UploadResponse struct {
	Inserted int `json:"inserted"`
}

// DashboardResponse carries the latest reading (nil when the user has none),
// a bounded recent window in chronological order for display, and the
// contact list.
type DashboardResponse struct {
	Latest   *ReadingResponse  `json:"latest"`
	Recent   []ReadingResponse `json:"recent"`
	Contacts []ContactResponse `json:"contacts"`
}

type CreateContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt string    `json:"created_at"`
}

type TriggerAlertRequest struct {
	Location string `json:"location"`
}

type AlertResponse struct {
	ID         uuid.UUID `json:"id"`
	Ts         string    `json:"ts"`
	Bpm        int       `json:"bpm"`
	Location   string    `json:"location"`
	Recipients string    `json:"recipients"`
	CreatedAt  string    `json:"created_at"`
}

type HistoryResponse struct {
	Readings []ReadingResponse `json:"readings"`
	Alerts   []AlertResponse   `json:"alerts"`
}
