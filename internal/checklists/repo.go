package checklists

import (
	"context"
	"time"

	"github.com/example/parkave-bakery/internal/db"
	"github.com/google/uuid"
)

// Completion records a checklist signed off for a date.
type Completion struct {
	ID          string    `json:"id"`
	TemplateID  string    `json:"templateId"`
	Date        string    `json:"date"`
	CompletedBy string    `json:"completedBy"`
	CompletedAt time.Time `json:"completedAt"`
}

// Session is the working state of one checklist on one date.
type Session struct {
	Responses  map[string]string `json:"responses"`
	Completion *Completion       `json:"completion"`
	Progress   int               `json:"progress"`
	Total      int               `json:"total"`
}

// Repo persists checklist responses and completions. Responses upsert one row
// per (date, template, item); progress is the count of non-empty responses.
type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Session(ctx context.Context, date, templateID string) (Session, error) {
	tmpl, ok := TemplateByID(templateID)
	if !ok {
		return Session{}, db.ErrNotFound
	}

	sess := Session{Responses: map[string]string{}, Total: tmpl.TotalItems()}

	rows, err := r.db.Query(ctx, `
SELECT item_id, value FROM checklist_responses
WHERE checklist_date = $1 AND template_id = $2`, date, templateID)
	if err != nil {
		return Session{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var itemID, value string
		if err := rows.Scan(&itemID, &value); err != nil {
			return Session{}, err
		}
		if value != "" {
			sess.Responses[itemID] = value
		}
	}
	if err := rows.Err(); err != nil {
		return Session{}, err
	}
	sess.Progress = len(sess.Responses)

	var c Completion
	err = r.db.QueryRow(ctx, `
SELECT id, template_id, to_char(checklist_date, 'YYYY-MM-DD'), completed_by, completed_at
FROM checklist_completions
WHERE checklist_date = $1 AND template_id = $2`, date, templateID).
		Scan(&c.ID, &c.TemplateID, &c.Date, &c.CompletedBy, &c.CompletedAt)
	switch {
	case err == nil:
		sess.Completion = &c
		sess.Progress = sess.Total
	case db.IsNotFound(err):
		// not completed yet
	default:
		return Session{}, err
	}

	return sess, nil
}

// SaveResponse upserts one answer and returns the updated progress count.
func (r *Repo) SaveResponse(ctx context.Context, date, templateID, itemID, value string) (Session, error) {
	if _, ok := TemplateByID(templateID); !ok {
		return Session{}, db.ErrNotFound
	}
	if err := r.db.Exec(ctx, `
INSERT INTO checklist_responses(checklist_date, template_id, item_id, value, updated_at)
VALUES ($1,$2,$3,$4, now())
ON CONFLICT (checklist_date, template_id, item_id)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		date, templateID, itemID, value); err != nil {
		return Session{}, err
	}
	return r.Session(ctx, date, templateID)
}

// MarkComplete signs a checklist off. Completing twice keeps the first
// record.
func (r *Repo) MarkComplete(ctx context.Context, date, templateID, completedBy string) (Completion, error) {
	if _, ok := TemplateByID(templateID); !ok {
		return Completion{}, db.ErrNotFound
	}
	if completedBy == "" {
		completedBy = "Staff"
	}
	id := uuid.NewString()
	if err := r.db.Exec(ctx, `
INSERT INTO checklist_completions(id, checklist_date, template_id, completed_by)
VALUES ($1,$2,$3,$4)
ON CONFLICT (checklist_date, template_id) DO NOTHING`,
		id, date, templateID, completedBy); err != nil {
		return Completion{}, err
	}

	var c Completion
	err := r.db.QueryRow(ctx, `
SELECT id, template_id, to_char(checklist_date, 'YYYY-MM-DD'), completed_by, completed_at
FROM checklist_completions
WHERE checklist_date = $1 AND template_id = $2`, date, templateID).
		Scan(&c.ID, &c.TemplateID, &c.Date, &c.CompletedBy, &c.CompletedAt)
	if err != nil {
		return Completion{}, db.WrapNotFound(err)
	}
	return c, nil
}

// History lists completions in a date range, newest first.
func (r *Repo) History(ctx context.Context, fromDate, toDate string) ([]Completion, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, template_id, to_char(checklist_date, 'YYYY-MM-DD'), completed_by, completed_at
FROM checklist_completions
WHERE checklist_date BETWEEN $1 AND $2
ORDER BY checklist_date DESC, completed_at DESC`, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Completion{}
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.ID, &c.TemplateID, &c.Date, &c.CompletedBy, &c.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
