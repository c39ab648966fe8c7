package storage

import "time"

// User roles as stored in the Users table and carried in JWT claims.
const (
	RoleTeamLead   = "team_lead"
	RoleTeamMember = "team_member"
	RoleMentor     = "mentor"
	RoleAdmin      = "admin"
)

// Submission statuses. Transitions are monotonic: draft -> submitted -> reviewed.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
)

type User struct {
	Email     string    `dynamodbav:"PK"`
	ID        string    `dynamodbav:"ID"`
	Name      string    `dynamodbav:"Name"`
	RollNo    string    `dynamodbav:"RollNo"`
	Role      string    `dynamodbav:"Role"`
	TeamCode  string    `dynamodbav:"TeamCode"`
	Password  string    `dynamodbav:"Password"` // bcrypt hash
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

type TeamMember struct {
	Name   string `dynamodbav:"Name"`
	Email  string `dynamodbav:"Email"`
	RollNo string `dynamodbav:"RollNo"`
}

type Team struct {
	TeamCode           string       `dynamodbav:"PK"`
	TeamName           string       `dynamodbav:"TeamName"`
	Leader             TeamMember   `dynamodbav:"Leader"`
	Members            []TeamMember `dynamodbav:"Members"`
	ProblemStatementID string       `dynamodbav:"ProblemStatementID"`
	CreatedAt          time.Time    `dynamodbav:"CreatedAt"`
}

type Round struct {
	Round    int       `dynamodbav:"PK"`
	Name     string    `dynamodbav:"Name"`
	StartAt  time.Time `dynamodbav:"StartAt"`
	EndAt    time.Time `dynamodbav:"EndAt"`
	IsActive bool      `dynamodbav:"IsActive"`
}

type SubmissionFields struct {
	Title           string `dynamodbav:"Title"`
	Description     string `dynamodbav:"Description"`
	RepoURL         string `dynamodbav:"RepoURL"`
	LiveURL         string `dynamodbav:"LiveURL"`
	PresentationURL string `dynamodbav:"PresentationURL"`
}

type Submission struct {
	TeamCode  string           `dynamodbav:"PK"`
	Round     int              `dynamodbav:"SK"`
	Fields    SubmissionFields `dynamodbav:"Fields"`
	Status    string           `dynamodbav:"Status"`
	CreatedAt time.Time        `dynamodbav:"CreatedAt"`
	UpdatedAt time.Time        `dynamodbav:"UpdatedAt"`
}

type JudgingCriterion struct {
	Key      string  `dynamodbav:"PK"`
	Name     string  `dynamodbav:"Name"`
	MaxScore int     `dynamodbav:"MaxScore"`
	Weight   float64 `dynamodbav:"Weight"`
	Round    int     `dynamodbav:"Round"` // 0 means any round
	IsActive bool    `dynamodbav:"IsActive"`
	Order    int     `dynamodbav:"Order"`
}

type ProblemStatement struct {
	SNo          int    `dynamodbav:"PK"`
	Organization string `dynamodbav:"Organization"`
	Title        string `dynamodbav:"Title"`
	Description  string `dynamodbav:"Description"`
	Category     string `dynamodbav:"Category"` // Software or Hardware
	PSNumber     string `dynamodbav:"PSNumber"`
	Theme        string `dynamodbav:"Theme"`
	Ideas        int    `dynamodbav:"Ideas"`
	IsActive     bool   `dynamodbav:"IsActive"`
}

type ScoreCriteria struct {
	Innovation   float64 `dynamodbav:"Innovation"`
	Feasibility  float64 `dynamodbav:"Feasibility"`
	Technical    float64 `dynamodbav:"Technical"`
	Presentation float64 `dynamodbav:"Presentation"`
}

type MentorScore struct {
	MentorID string        `dynamodbav:"MentorID"`
	Criteria ScoreCriteria `dynamodbav:"Criteria"`
	Comments string        `dynamodbav:"Comments"`
	Total    float64       `dynamodbav:"Total"`
}

type AdminScore struct {
	Total        float64 `dynamodbav:"Total"`
	FinalComment string  `dynamodbav:"FinalComment"`
}

// Score holds all judging data for one (team, round) pair. AverageScore is
// always the mean of MentorScores totals and is recomputed before every
// write. Version backs the conditional put that guards concurrent mentor
// upserts against lost updates.
type Score struct {
	TeamCode     string        `dynamodbav:"PK"`
	Round        int           `dynamodbav:"SK"`
	MentorScores []MentorScore `dynamodbav:"MentorScores"`
	AdminScore   *AdminScore   `dynamodbav:"AdminScore"`
	AverageScore float64       `dynamodbav:"AverageScore"`
	Version      int64         `dynamodbav:"Version"`
	CreatedAt    time.Time     `dynamodbav:"CreatedAt"`
	UpdatedAt    time.Time     `dynamodbav:"UpdatedAt"`
}
