package types

// Priority levels used across gaps, missing skills and recommendations.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// AnalyzeInput represents the input for a resume-to-job analysis
type AnalyzeInput struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// SkillMatch represents a skill present in both the resume and the job description
type SkillMatch struct {
	Name      string  `json:"name"`
	Relevance float64 `json:"relevance"`
}

// MissingSkill represents a job requirement absent from the resume
type MissingSkill struct {
	Name       string `json:"name"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

// Gap represents a categorized shortfall between the resume and the job
type Gap struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Actionable  string `json:"actionable"`
}

// Recommendation represents a concrete resume improvement suggestion
type Recommendation struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
	Impact   string `json:"impact"`
}

// AnalyzeOutput represents the full result of a resume-to-job analysis
type AnalyzeOutput struct {
	MatchScore      int              `json:"match_score"`
	MatchedSkills   []SkillMatch     `json:"matched_skills"`
	MissingSkills   []MissingSkill   `json:"missing_skills"`
	Gaps            []Gap            `json:"gaps"`
	Recommendations []Recommendation `json:"recommendations"`
	TopTip          string           `json:"top_tip"`
	Model           string           `json:"model"`
}

// ChatContext carries prior analysis state into a coaching conversation
type ChatContext struct {
	ResumeText     string   `json:"resume_text,omitempty"`
	JobDescription string   `json:"job_description,omitempty"`
	MatchScore     int      `json:"match_score,omitempty"`
	Gaps           []string `json:"gaps,omitempty"`
}

// ChatTurn represents a single prior exchange in a conversation
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatInput represents the input for a career coaching chat
type ChatInput struct {
	Message string       `json:"message"`
	Context *ChatContext `json:"context,omitempty"`
	History []ChatTurn   `json:"history,omitempty"`
}

// ChatOutput represents the coaching reply
type ChatOutput struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// ExtractSkillsInput represents the input for standalone skill extraction
type ExtractSkillsInput struct {
	Text string `json:"text"`
}

// ExtractSkillsOutput represents the extracted skill list
type ExtractSkillsOutput struct {
	Skills []string `json:"skills"`
	Model  string   `json:"model"`
}

// ExtractTextInput represents an uploaded document to convert to plain text.
// FileContent is base64-encoded; FileType is one of "pdf", "docx" or "txt".
type ExtractTextInput struct {
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileContent string `json:"file_content"`
}

// ExtractTextOutput represents the plain text recovered from a document
type ExtractTextOutput struct {
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}
