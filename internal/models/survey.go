package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pillar is one weighted scoring dimension of the survey (e.g. "People").
// MaxPoints is the ceiling of raw points that can count towards the pillar;
// Weight is the pillar's share of the total score.
type Pillar struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description *string    `json:"description"`
	MaxPoints   float64    `gorm:"not null" json:"maxPoints"`
	Weight      float64    `gorm:"not null" json:"weight"`
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Pillar) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Question belongs to exactly one pillar. MaxPoints is informational; the
// aggregation only enforces the pillar-level ceiling. Hidden questions are
// excluded from the live survey but their responses keep counting.
type Question struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PillarID  string    `gorm:"size:36;index;not null" json:"pillarId"`
	Pillar    Pillar    `json:"pillar,omitempty"`
	Text      string    `gorm:"not null" json:"text"`
	MaxPoints float64   `gorm:"not null" json:"maxPoints"`
	IsHidden  bool      `gorm:"not null;default:false" json:"isHidden"`
	Options   []Option  `gorm:"constraint:OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Option is a selectable answer carrying the points awarded when chosen.
type Option struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	QuestionID string    `gorm:"size:36;index;not null" json:"questionId"`
	Label      string    `gorm:"not null" json:"label"`
	Points     float64   `gorm:"not null" json:"points"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Response is a user's recorded answer to one question. Score is copied from
// the selected option at submission time so historical results stay stable
// even if option points are edited later. OptionID may be null when the
// option an answer pointed at has been deleted.
type Response struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;uniqueIndex:idx_responses_user_question;not null" json:"userId"`
	QuestionID string    `gorm:"size:36;uniqueIndex:idx_responses_user_question;not null" json:"questionId"`
	Question   Question  `json:"question,omitempty"`
	OptionID   *string   `gorm:"size:36" json:"optionId"`
	Option     *Option   `json:"option,omitempty"`
	Score      float64   `gorm:"not null" json:"score"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// SurveyResult is the persisted scoring snapshot, one row per user, fully
// replaced on every recompute. Breakdown holds the serialized per-pillar
// breakdown as JSON.
type SurveyResult struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	UserID     string         `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	User       User           `json:"user,omitempty"`
	TotalScore float64        `gorm:"not null" json:"totalScore"`
	Breakdown  datatypes.JSON `json:"breakdown"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (s *SurveyResult) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// FashionScore is a user-submitted sustainability rating for a brand,
// independent of the survey itself.
type FashionScore struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;index;not null" json:"userId"`
	User        User      `json:"user,omitempty"`
	Brand       string    `gorm:"not null" json:"brand"`
	Score       float64   `gorm:"not null" json:"score"`
	Category    string    `gorm:"not null" json:"category"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (f *FashionScore) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
