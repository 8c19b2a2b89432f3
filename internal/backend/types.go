package backend

// PersonType discriminates who a schedule entry belongs to.
type PersonType string

const (
	PersonDoctor PersonType = "doctor"
	PersonStaff  PersonType = "staff"
)

// StaffRole is the staff sub-type attached to staff schedule entries.
type StaffRole string

const (
	RoleReceptionist StaffRole = "receptionist"
	RoleStorekeeper  StaffRole = "storekeeper"
	RoleNurse        StaffRole = "nurse"
)

// Location is a clinic site.
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Doctor is a physician record from the directory.
type Doctor struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty,omitempty"`
}

// Staff is a non-physician employee record.
type Staff struct {
	ID       string    `json:"id"`
	FullName string    `json:"full_name"`
	Role     StaffRole `json:"role"`
}

// ScheduleEntry is one bounded-time work assignment for a doctor or staff
// member at a location. Date is a plain calendar day ("2006-01-02"); the
// clock times are local "15:04" strings with no zone attached.
type ScheduleEntry struct {
	ID         string     `json:"id"`
	PersonType PersonType `json:"person_type"`
	PersonID   string     `json:"person_id"`
	StaffRole  StaffRole  `json:"staff_role,omitempty"`
	Date       string     `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	LocationID string     `json:"location_id"`
	Notes      string     `json:"notes,omitempty"`
}

// CreateScheduleRequest carries the writable fields of a schedule entry.
type CreateScheduleRequest struct {
	PersonType PersonType `json:"person_type"`
	PersonID   string     `json:"person_id"`
	StaffRole  StaffRole  `json:"staff_role,omitempty"`
	Date       string     `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	LocationID string     `json:"location_id"`
	Notes      string     `json:"notes,omitempty"`
}

// UpdateScheduleRequest mutates an existing entry in place.
type UpdateScheduleRequest struct {
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ListSchedulesParams narrows a schedule query. From/To are inclusive
// calendar days ("2006-01-02").
type ListSchedulesParams struct {
	LocationID string
	PersonType PersonType
	StaffRole  StaffRole
	From       string
	To         string
}

// Patient is an existing patient record, looked up by national ID.
type Patient struct {
	ID          string `json:"id"`
	IDCard      string `json:"id_card"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender,omitempty"`
	Email       string `json:"email,omitempty"`
}

// NewPatient carries the fields registered for a previously unknown walk-in.
type NewPatient struct {
	IDCard      string `json:"id_card"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender,omitempty"`
	Email       string `json:"email,omitempty"`
}

// WalkInRequest queues an unscheduled patient at a location. Exactly one of
// PatientID or Patient is set.
type WalkInRequest struct {
	PatientID  string      `json:"patient_id,omitempty"`
	Patient    *NewPatient `json:"patient,omitempty"`
	LocationID string      `json:"location_id"`
}

// WalkInTicket is the queue position handed back on a successful submission.
type WalkInTicket struct {
	ID          string `json:"id"`
	QueueNumber int    `json:"queue_number"`
	LocationID  string `json:"location_id"`
	Message     string `json:"message,omitempty"`
}

// Invoice is a billing record used by revenue statistics.
type Invoice struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	IssuedDate string `json:"issued_date"`
}

// ListInvoicesParams narrows an invoice query by location and issued-date range.
type ListInvoicesParams struct {
	LocationID string
	From       string
	To         string
}

// Pagination mirrors the backend's optional list paging block.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
