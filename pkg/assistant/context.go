package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/folio-site/folio/pkg/models"
	"github.com/folio-site/folio/pkg/store"
)

// contextPlaceholder is the template token replaced with the rendered
// portfolio snapshot.
const contextPlaceholder = "{context_data}"

// maxContextProjects caps the project list in the instruction.
const maxContextProjects = 5

// fallbackContext keeps the instruction buildable when portfolio reads fail.
const fallbackContext = "Professional software developer portfolio."

// ContextBuilder assembles the system instruction from configured template
// lines and a fresh portfolio snapshot.
type ContextBuilder struct {
	store        store.Store
	lines        []string
	contactEmail string
	log          *zap.Logger
}

// NewContextBuilder creates a ContextBuilder. contactEmail is used when the
// stored profile has no email.
func NewContextBuilder(st store.Store, lines []string, contactEmail string, log *zap.Logger) *ContextBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContextBuilder{store: st, lines: lines, contactEmail: contactEmail, log: log}
}

// Build returns the full system instruction. It never fails: a snapshot read
// error substitutes a short static description instead.
func (b *ContextBuilder) Build(ctx context.Context) string {
	contextData, err := b.renderSnapshot(ctx)
	if err != nil {
		b.log.Warn("context build failed, using fallback description", zap.Error(err))
		contextData = fallbackContext
	}
	return strings.ReplaceAll(strings.Join(b.lines, "\n"), contextPlaceholder, contextData)
}

func (b *ContextBuilder) renderSnapshot(ctx context.Context) (string, error) {
	snap, err := b.snapshot(ctx)
	if err != nil {
		return "", err
	}

	projects := snap.Projects
	if len(projects) > maxContextProjects {
		projects = projects[:maxContextProjects]
	}
	projectLines := make([]string, 0, len(projects))
	for _, p := range projects {
		projectLines = append(projectLines, fmt.Sprintf("- %s: %s", p.Name, p.Description))
	}

	certText := "No certifications listed."
	if len(snap.Certifications) > 0 {
		certLines := make([]string, 0, len(snap.Certifications))
		for _, c := range snap.Certifications {
			certLines = append(certLines, fmt.Sprintf("- %s by %s (%s)", c.Title, c.Issuer, c.Status))
		}
		certText = strings.Join(certLines, "\n")
	}

	postText := "No blog posts available."
	if len(snap.Posts) > 0 {
		postLines := make([]string, 0, len(snap.Posts))
		for _, p := range snap.Posts {
			postLines = append(postLines, fmt.Sprintf("- %s: %s", p.Title, p.Summary))
		}
		postText = strings.Join(postLines, "\n")
	}

	knowledgeLines := make([]string, 0, len(snap.Knowledge))
	for _, k := range snap.Knowledge {
		knowledgeLines = append(knowledgeLines, fmt.Sprintf("[%s]: %s", k.Category, k.Info))
	}

	email := snap.Profile.Email
	if email == "" {
		email = b.contactEmail
	}
	if email == "" {
		email = "N/A"
	}

	return fmt.Sprintf(
		"PROJECTS:\n%s\n\nCERTIFICATIONS:\n%s\n\nBLOG POSTS:\n%s\n\nKNOWLEDGE BASE:\n%s\n\nCONTACT: %s",
		strings.Join(projectLines, "\n"), certText, postText,
		strings.Join(knowledgeLines, "\n"), email,
	), nil
}

// snapshot reads a point-in-time portfolio aggregation. Reassembled on every
// call; the data is bounded in size so this stays cheap.
func (b *ContextBuilder) snapshot(ctx context.Context) (*models.PortfolioSnapshot, error) {
	projects, err := b.store.AllProjects(ctx)
	if err != nil {
		return nil, err
	}
	certs, err := b.store.AllCertifications(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := b.store.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	knowledge, err := b.store.AllKnowledge(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := b.store.UserProfile(ctx)
	if err != nil {
		return nil, err
	}

	return &models.PortfolioSnapshot{
		Projects:       projects,
		Certifications: certs,
		Posts:          posts,
		Knowledge:      knowledge,
		Profile:        profile,
	}, nil
}
