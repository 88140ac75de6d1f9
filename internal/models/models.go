package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Language is the language a post is written in
type Language string

const (
	LanguageEnglish  Language = "English"
	LanguageHinglish Language = "Hinglish"
)

// Valid reports whether the language is a known value
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageHinglish
}

// LengthBucket is a coarse post length category mapping to a line-count band
type LengthBucket string

const (
	LengthShort  LengthBucket = "Short"
	LengthMedium LengthBucket = "Medium"
	LengthLong   LengthBucket = "Long"
)

// Valid reports whether the bucket is a known value
func (b LengthBucket) Valid() bool {
	return b == LengthShort || b == LengthMedium || b == LengthLong
}

// LineHint returns the target line-count description for a bucket
func (b LengthBucket) LineHint() string {
	switch b {
	case LengthShort:
		return "1 to 5 lines"
	case LengthMedium:
		return "6 to 10 lines"
	case LengthLong:
		return "11 to 15 lines"
	}
	return "1 to 5 lines"
}

// MaxLines returns the upper line-count bound for validation, including
// one line of slack over the bucket band.
func (b LengthBucket) MaxLines() int {
	switch b {
	case LengthShort:
		return 6
	case LengthMedium:
		return 11
	case LengthLong:
		return 16
	}
	return 6
}

// BucketForLineCount categorizes a post by its line count
func BucketForLineCount(lines int) LengthBucket {
	switch {
	case lines < 5:
		return LengthShort
	case lines <= 10:
		return LengthMedium
	default:
		return LengthLong
	}
}

// Tone of a generated post
type Tone string

const (
	ToneProfessional  Tone = "Professional"
	ToneCasual        Tone = "Casual"
	ToneHumorous      Tone = "Humorous"
	ToneInspirational Tone = "Inspirational"
	ToneEducational   Tone = "Educational"
)

// Tones lists all supported tones
var Tones = []Tone{ToneProfessional, ToneCasual, ToneHumorous, ToneInspirational, ToneEducational}

// Valid reports whether the tone is a known value
func (t Tone) Valid() bool {
	for _, v := range Tones {
		if t == v {
			return true
		}
	}
	return false
}

// Audiences, purposes and styles supported by custom generation
var (
	Audiences = []string{"Students", "Professionals", "Entrepreneurs", "Job Seekers", "General"}
	Purposes  = []string{"Share Experience", "Give Advice", "Ask Question", "Celebrate Achievement", "Educational"}
	Styles    = []string{"Storytelling", "List Format", "Question-Answer", "Tips & Tricks", "Personal Reflection"}
)

// ExamplePost is a labeled historical post used as few-shot context.
// Entries are immutable once loaded into a dataset snapshot.
type ExamplePost struct {
	ID         uuid.UUID    `json:"id,omitempty"`
	Text       string       `json:"text"`
	Tags       []string     `json:"tags"`
	Language   Language     `json:"language"`
	Length     LengthBucket `json:"length"`
	LineCount  int          `json:"line_count"`
	Engagement int          `json:"engagement"`
	Tone       Tone         `json:"tone,omitempty"`
	Audience   string       `json:"target_audience,omitempty"`
}

// HasTag reports whether the post carries the given tag
func (p ExamplePost) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Normalize fills derived fields that raw datasets commonly omit
func (p *ExamplePost) Normalize() {
	if p.LineCount == 0 {
		p.LineCount = len(strings.Split(p.Text, "\n"))
	}
	if p.Length == "" {
		p.Length = BucketForLineCount(p.LineCount)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Engagement < 0 {
		p.Engagement = 0
	}
}

// GenerationRequest describes one quick-generate call
type GenerationRequest struct {
	Topic           string       `json:"topic" binding:"required"`
	Length          LengthBucket `json:"length" binding:"required"`
	Language        Language     `json:"language" binding:"required"`
	Tone            Tone         `json:"tone"`
	Audience        string       `json:"audience,omitempty"`
	Style           string       `json:"style,omitempty"`
	IncludeHashtags bool         `json:"include_hashtags"`
	IncludeEmojis   bool         `json:"include_emojis"`
	AddCTA          bool         `json:"add_cta"`
	Professional    bool         `json:"professional"`
	DatasetID       uuid.UUID    `json:"dataset_id,omitempty"`
}

// CustomRequest describes a fully parameterized generation call
type CustomRequest struct {
	Topic    string       `json:"topic" binding:"required"`
	Audience string       `json:"audience" binding:"required"`
	Purpose  string       `json:"purpose" binding:"required"`
	Length   LengthBucket `json:"length" binding:"required"`
	Language Language     `json:"language" binding:"required"`
	Style    string       `json:"style"`
	Context  string       `json:"context,omitempty"`
	Keywords []string     `json:"keywords,omitempty"`
}

// PromptContext is the ephemeral input to one prompt build
type PromptContext struct {
	Request  GenerationRequest
	Examples []ExamplePost
}

// GeneratedPost is a history record of one successful generation
type GeneratedPost struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	DatasetID uuid.UUID    `json:"dataset_id,omitempty"`
	Text      string       `json:"text"`
	Topic     string       `json:"topic"`
	Length    LengthBucket `json:"length"`
	Language  Language     `json:"language"`
	Tone      Tone         `json:"tone,omitempty"`
	Model     string       `json:"model"`
	Warnings  []string     `json:"warnings,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// DatasetStatus tracks the processing lifecycle of an uploaded dataset
type DatasetStatus string

const (
	DatasetStatusRaw        DatasetStatus = "raw"
	DatasetStatusProcessing DatasetStatus = "processing"
	DatasetStatusReady      DatasetStatus = "ready"
	DatasetStatusFailed     DatasetStatus = "failed"
)

// Dataset is metadata about one uploaded collection of example posts
type Dataset struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Status    DatasetStatus `json:"status"`
	PostCount int           `json:"post_count"`
	CreatedBy uuid.UUID     `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DatasetStats summarizes a dataset for the stats endpoint
type DatasetStats struct {
	TotalPosts    int                  `json:"total_posts"`
	Languages     map[Language]int     `json:"languages"`
	Lengths       map[LengthBucket]int `json:"length_distribution"`
	Tones         map[Tone]int         `json:"tones,omitempty"`
	Audiences     map[string]int       `json:"audiences,omitempty"`
	AvgEngagement float64              `json:"avg_engagement"`
	TotalTags     int                  `json:"total_tags"`
	TopTags       map[string]int       `json:"top_tags"`
}

// User is an API account
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
