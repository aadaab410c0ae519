package models

// Project is a portfolio project entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// Certification is a completed or in-progress certification.
type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Status string `json:"status"`
}

// Post is a published blog post.
type Post struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Profile holds the site owner's contact metadata.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PortfolioSnapshot is a point-in-time aggregation of portfolio data used to
// render the system instruction. It is rebuilt on every call, never cached.
type PortfolioSnapshot struct {
	Projects       []Project
	Certifications []Certification
	Posts          []Post
	Knowledge      []KnowledgeEntry
	Profile        Profile
}
