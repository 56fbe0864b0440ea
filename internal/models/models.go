package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB custom type for JSON fields
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONB)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Base model with UUID
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Admin represents a school administrator account. Each admin owns one
// school's worth of students, exams, subjects and results.
type Admin struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	SchoolName   string `gorm:"type:varchar(255);not null" json:"school_name"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	Meta         JSONB  `gorm:"type:json" json:"meta"`
}

// Student represents a student belonging to one admin's school
type Student struct {
	BaseModel
	AdminID    uuid.UUID `gorm:"type:char(36);not null;index;uniqueIndex:idx_register_admin" json:"admin_id"`
	RegisterNo string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_register_admin" json:"register_no"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	DOB        string    `gorm:"type:varchar(10);not null" json:"dob"`
	Class      string    `gorm:"type:varchar(50)" json:"class"`
	Section    string    `gorm:"type:varchar(20)" json:"section"`
	Email      string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Admin      *Admin    `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// ExamType is an ordered exam category (e.g. Midterm, Final)
type ExamType struct {
	BaseModel
	AdminID    uuid.UUID `gorm:"type:char(36);not null;index" json:"admin_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	OrderIndex int       `gorm:"default:0" json:"order_index"`
	Admin      *Admin    `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// Exam represents a scheduled examination. Exams start unpublished and
// transition once to published; results stay invisible to students until then.
type Exam struct {
	BaseModel
	AdminID     uuid.UUID  `gorm:"type:char(36);not null;index" json:"admin_id"`
	ExamTypeID  uuid.UUID  `gorm:"type:char(36);not null;index" json:"exam_type_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	ExamDate    time.Time  `gorm:"type:date" json:"exam_date"`
	IsPublished bool       `gorm:"default:false;index" json:"is_published"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	ExamType    *ExamType  `gorm:"foreignKey:ExamTypeID" json:"exam_type,omitempty"`
	Admin       *Admin     `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// Subject represents a graded subject; MaxMarks is the denominator for all
// percentage math on results in that subject
type Subject struct {
	BaseModel
	AdminID  uuid.UUID `gorm:"type:char(36);not null;index" json:"admin_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	MaxMarks float64   `gorm:"type:decimal(7,2);not null;default:100" json:"max_marks"`
	Admin    *Admin    `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// Result stores a student's marks for one subject in one exam. Grade is
// derived from marks and the subject's max marks on every write, never set
// independently. One row per (exam, student, subject); a second write to the
// same triple overwrites the first.
type Result struct {
	BaseModel
	AdminID       uuid.UUID `gorm:"type:char(36);not null;index" json:"admin_id"`
	ExamID        uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_result_triple" json:"exam_id"`
	StudentID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_result_triple" json:"student_id"`
	SubjectID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_result_triple" json:"subject_id"`
	MarksObtained float64   `gorm:"type:decimal(7,2);not null" json:"marks_obtained"`
	Grade         string    `gorm:"type:char(2);not null" json:"grade"`
	Exam          *Exam     `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	Student       *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject       *Subject  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// Notification records a message queued for a student over some channel
type Notification struct {
	BaseModel
	AdminID   uuid.UUID  `gorm:"type:char(36);not null;index" json:"admin_id"`
	StudentID *uuid.UUID `gorm:"type:char(36);index" json:"student_id,omitempty"`
	Channel   string     `gorm:"type:varchar(20);not null" json:"channel"`
	Target    string     `gorm:"type:varchar(255)" json:"target"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Status    string     `gorm:"type:varchar(20);default:'queued'" json:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// AuditLog tracks all data changes
type AuditLog struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ActorAdminID uuid.UUID `gorm:"type:char(36);index" json:"actor_admin_id"`
	Action       string    `gorm:"type:varchar(50);not null" json:"action"`
	ResourceType string    `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   uuid.UUID `gorm:"type:char(36);index" json:"resource_id"`
	Before       JSONB     `gorm:"type:json" json:"before"`
	After        JSONB     `gorm:"type:json" json:"after"`
	Timestamp    time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	IP           string    `gorm:"type:varchar(45)" json:"ip"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// RefreshToken stores refresh tokens for revocation. PrincipalID is the
// admin or student the token was issued to, disambiguated by Role.
type RefreshToken struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	PrincipalID uuid.UUID `gorm:"type:char(36);not null;index" json:"principal_id"`
	Role        string    `gorm:"type:varchar(20);not null" json:"role"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null" json:"token"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	Revoked     bool      `gorm:"default:false;index" json:"revoked"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
