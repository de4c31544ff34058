package models

// TeamStatus is the approval state of a team. The values are the labels
// stored in the registration spreadsheet.
type TeamStatus string

const (
	TeamStatusPending  TeamStatus = "รอตรวจสอบ"
	TeamStatusApproved TeamStatus = "อนุมัติ"
	TeamStatusRejected TeamStatus = "ไม่ผ่าน"
)

// BadgeClass returns the CSS class used to render the status badge
func (s TeamStatus) BadgeClass() string {
	switch s {
	case TeamStatusApproved:
		return "badge-approved"
	case TeamStatusRejected:
		return "badge-rejected"
	default:
		return "badge-pending"
	}
}

// MemberKind distinguishes the two member lists of a team
type MemberKind string

const (
	MemberTeacher MemberKind = "teachers"
	MemberStudent MemberKind = "students"
)

// TeamMember is a named participant. Detail holds the email for a teacher
// and the class name for a student.
type TeamMember struct {
	FullName string `json:"fullName" validate:"required"`
	Detail   string `json:"detail" validate:"required"`
}

// Contact is the person the organisers reach for a team
type Contact struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// Team is a registered entry into one activity
type Team struct {
	ID         string       `json:"id"`
	ActivityID string       `json:"activityId"`
	TeamName   string       `json:"teamName"`
	School     string       `json:"school"`
	Level      string       `json:"level"`
	Contact    Contact      `json:"contact"`
	Teachers   []TeamMember `json:"teachers"`
	Students   []TeamMember `json:"students"`
	Status     TeamStatus   `json:"status"`
	Order      int          `json:"order"`
}

// MemberCount returns the number of teachers and students on the team
func (t *Team) MemberCount() int {
	return len(t.Teachers) + len(t.Students)
}

// FileType lists the documents a team may upload
type FileType string

const (
	FileTypeConsent   FileType = "หนังสือยินยอม"
	FileTypeSlip      FileType = "สลิปโอนเงิน"
	FileTypePortfolio FileType = "แฟ้มผลงาน"
	FileTypeOther     FileType = "อื่นๆ"
)

// FileTypes returns the document types in display order
func FileTypes() []FileType {
	return []FileType{FileTypeConsent, FileTypeSlip, FileTypePortfolio, FileTypeOther}
}

// TeamPayload is the registration data sent to the spreadsheet endpoint.
// The server assigns ID, Status and Order.
type TeamPayload struct {
	ActivityID string       `json:"activityId" validate:"required"`
	TeamName   string       `json:"teamName"`
	School     string       `json:"school" validate:"required"`
	Level      string       `json:"level" validate:"required"`
	Contact    Contact      `json:"contact"`
	Teachers   []TeamMember `json:"teachers" validate:"dive"`
	Students   []TeamMember `json:"students" validate:"dive"`
}
