package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/folio-site/folio/pkg/models"
)

// AllProjects returns all projects, featured entries first.
func (s *SQLiteStore) AllProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description, featured FROM projects ORDER BY featured DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.Name, &p.Description, &p.Featured); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// AllCertifications returns all certifications in storage order.
func (s *SQLiteStore) AllCertifications(ctx context.Context) ([]models.Certification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, issuer, status FROM certifications ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all certifications: %w", err)
	}
	defer rows.Close()

	var certs []models.Certification
	for rows.Next() {
		var c models.Certification
		if err := rows.Scan(&c.Title, &c.Issuer, &c.Status); err != nil {
			return nil, fmt.Errorf("scan certification: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

// AllPosts returns all posts, newest first.
func (s *SQLiteStore) AllPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, summary FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("all posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.Title, &p.Summary); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UserProfile returns the site owner's profile. A missing row yields an
// empty profile, not an error.
func (s *SQLiteStore) UserProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT name, email FROM profile WHERE id = 1`).Scan(&p.Name, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("user profile: %w", err)
	}
	return p, nil
}

// SetUserProfile upserts the single profile row. Used by seeding and tests.
func (s *SQLiteStore) SetUserProfile(ctx context.Context, p models.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profile (id, name, email) VALUES (1, ?, ?)`, p.Name, p.Email)
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// AddProject inserts a project. Used by seeding and tests.
func (s *SQLiteStore) AddProject(ctx context.Context, p models.Project) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (name, description, featured) VALUES (?, ?, ?)`,
		p.Name, p.Description, p.Featured)
	if err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	return nil
}

// AddCertification inserts a certification. Used by seeding and tests.
func (s *SQLiteStore) AddCertification(ctx context.Context, c models.Certification) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO certifications (title, issuer, status) VALUES (?, ?, ?)`,
		c.Title, c.Issuer, c.Status)
	if err != nil {
		return fmt.Errorf("add certification: %w", err)
	}
	return nil
}

// AddPost inserts a post. Used by seeding and tests.
func (s *SQLiteStore) AddPost(ctx context.Context, p models.Post) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, summary) VALUES (?, ?)`, p.Title, p.Summary)
	if err != nil {
		return fmt.Errorf("add post: %w", err)
	}
	return nil
}
