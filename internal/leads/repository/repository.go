package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	Website     string
	Budget      string
	Service     string
	StartTime   string
	Designation string
	Description string
	CreatedAt   time.Time
	// Actions are in append order.
	Actions []Action
}

type Action struct {
	Seq              int64
	ID               uuid.UUID
	LeadID           uuid.UUID
	ConnectionStatus string
	ConnectedVia     string
	ClientStage      string
	Remarks          string
	NextFollowUp     string
	ActionBy         string
	CreatedAt        time.Time
}

type CreateLeadParams struct {
	Name        string
	Email       string
	Phone       string
	Website     string
	Budget      string
	Service     string
	StartTime   string
	Designation string
	Description string
}

type AppendActionParams struct {
	ConnectionStatus string
	ConnectedVia     string
	ClientStage      string
	Remarks          string
	NextFollowUp     string
	ActionBy         string
}

const leadColumns = `id, name, email, phone, website, budget, service, start_time, designation, description, created_at`

const actionColumns = `seq, id, lead_id, connection_status, connected_via, client_stage, remarks, next_follow_up, action_by, created_at`

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, website, budget, service, start_time, designation, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leadColumns,
		params.Name, params.Email, params.Phone, params.Website, params.Budget,
		params.Service, params.StartTime, params.Designation, params.Description,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, err
	}
	lead.Actions = []Action{}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}

	actions, err := listActionsFor(ctx, r.pool, id)
	if err != nil {
		return Lead{}, err
	}
	lead.Actions = actions
	return lead, nil
}

// List returns every lead, newest first, with its full action history.
// Leads and actions are read by two concurrent statements; a lead's actions
// always come from the same statement, so one lead's history is never torn.
func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	var (
		leads   []Lead
		actions []Action
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id`)
		if err != nil {
			return fmt.Errorf("query leads: %w", err)
		}
		leads, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Lead, error) {
			return scanLead(row)
		})
		return err
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+actionColumns+` FROM lead_actions ORDER BY seq`)
		if err != nil {
			return fmt.Errorf("query lead actions: %w", err)
		}
		actions, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Action, error) {
			return scanAction(row)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return attachActions(leads, actions), nil
}

// AppendAction adds one action to a lead and returns the lead with its
// complete history as of the append, together with the stored action.
// The insert is conditional on the lead existing, so no row is ever read and
// rewritten; concurrent appends each land as their own row.
func (r *Repository) AppendAction(ctx context.Context, leadID uuid.UUID, params AppendActionParams) (Lead, Action, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Lead{}, Action{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appended, err := scanAction(tx.QueryRow(ctx, `
		INSERT INTO lead_actions (lead_id, connection_status, connected_via, client_stage, remarks, next_follow_up, action_by)
		SELECT l.id, $2, $3, $4, $5, $6, $7
		FROM leads l
		WHERE l.id = $1
		RETURNING `+actionColumns,
		leadID, params.ConnectionStatus, params.ConnectedVia, params.ClientStage,
		params.Remarks, params.NextFollowUp, params.ActionBy,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, Action{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, Action{}, err
	}

	lead, err := scanLead(tx.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, leadID))
	if err != nil {
		return Lead{}, Action{}, err
	}
	lead.Actions, err = listActionsFor(ctx, tx, leadID)
	if err != nil {
		return Lead{}, Action{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Lead{}, Action{}, err
	}
	return lead, appended, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listActionsFor(ctx context.Context, q querier, leadID uuid.UUID) ([]Action, error) {
	rows, err := q.Query(ctx, `SELECT `+actionColumns+` FROM lead_actions WHERE lead_id = $1 ORDER BY seq`, leadID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Action, error) {
		return scanAction(row)
	})
}

// attachActions stitches actions onto their leads, keeping both orders.
// Actions whose lead is not in the list are dropped.
func attachActions(leads []Lead, actions []Action) []Lead {
	index := make(map[uuid.UUID]int, len(leads))
	for i := range leads {
		leads[i].Actions = []Action{}
		index[leads[i].ID] = i
	}
	for _, action := range actions {
		if i, ok := index[action.LeadID]; ok {
			leads[i].Actions = append(leads[i].Actions, action)
		}
	}
	return leads
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Website, &lead.Budget,
		&lead.Service, &lead.StartTime, &lead.Designation, &lead.Description, &lead.CreatedAt,
	)
	return lead, err
}

func scanAction(row pgx.Row) (Action, error) {
	var action Action
	err := row.Scan(
		&action.Seq, &action.ID, &action.LeadID, &action.ConnectionStatus, &action.ConnectedVia,
		&action.ClientStage, &action.Remarks, &action.NextFollowUp, &action.ActionBy, &action.CreatedAt,
	)
	return action, err
}
