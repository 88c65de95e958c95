// internal/infra/monday/channel.go
package monday

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cubicle_notifier/internal/domain/delivery"
	"cubicle_notifier/internal/domain/user"
	"cubicle_notifier/internal/infra/config"

	"github.com/machinebox/graphql"
)

// graphqlRunner is the slice of graphql.Client we use, extracted for tests.
// The machinebox client surfaces a top-level "errors" array in the response
// body as a Go error even when the HTTP status is 200, which is exactly the
// failure contract the Monday.com API requires.
type graphqlRunner interface {
	Run(ctx context.Context, req *graphql.Request, resp interface{}) error
}

const createItemMutation = `mutation ($board: ID!, $name: String!, $cols: JSON) {
  create_item (board_id: $board, item_name: $name, column_values: $cols) {
    id
  }
}`

// Channel creates work items on a Monday.com board. Configured iff an API key
// and a board id are present. Creating a run-level task also announces it on
// Slack when a broadcaster is available.
type Channel struct {
	cfg       *config.AppConfig
	client    graphqlRunner
	announcer delivery.Broadcaster // optional, may be nil
	logger    *log.Logger
}

func NewChannel(cfg *config.AppConfig, announcer delivery.Broadcaster, logger *log.Logger) *Channel {
	return &Channel{
		cfg:       cfg,
		client:    graphql.NewClient(cfg.MondayAPIURL),
		announcer: announcer,
		logger:    logger,
	}
}

func (c *Channel) Name() string { return "monday" }

func (c *Channel) IsConfigured() bool { return c.cfg.TaskTrackerConfigured() }

// CreateTask turns a utilization report into a board item when the
// classification policy says one is warranted. Returns created=false without
// error when no action is needed.
func (c *Channel) CreateTask(ctx context.Context, report user.UtilizationReport) (bool, string, error) {
	action, needed := classify(report)
	if !needed {
		c.logger.Printf("INFO: Utilization within normal bounds (avg %.1f%%, peak %.1f%%). No task created.", report.AveragePct, report.PeakPct)
		return false, "", nil
	}

	name := fmt.Sprintf("[%s] Cubicle utilization review", action.Priority)
	itemID, err := c.createItem(ctx, name, action, action.Summary)
	if err != nil {
		return false, "", err
	}

	if c.announcer != nil {
		announcement := fmt.Sprintf(":clipboard: Created %s-priority task #%s: %s", action.Priority, itemID, action.Summary)
		if err := c.announcer.Broadcast(ctx, announcement); err != nil {
			// The task itself was created; the announcement is best-effort.
			c.logger.Printf("WARN: Task %s created but Slack announcement failed: %v", itemID, err)
		}
	}
	return true, itemID, nil
}

// Send creates a per-user follow-up item. Used for promotional outreach when
// a user barely reserves.
func (c *Channel) Send(ctx context.Context, u user.Summary, nctx delivery.Context) error {
	action := Action{Priority: priorityMedium, Status: "To Do"}
	description := fmt.Sprintf(
		"Reach out to %s (%s): %d reservations over %d active days. Point them at %s.",
		u.DisplayName, u.Email, u.TotalReservations, u.DaysActive, c.cfg.FrontendURL,
	)
	name := fmt.Sprintf("Follow up with %s", u.DisplayName)
	_, err := c.createItem(ctx, name, action, description)
	return err
}

func (c *Channel) createItem(ctx context.Context, name string, action Action, description string) (string, error) {
	cols, err := json.Marshal(map[string]string{
		"status":      action.Status,
		"priority":    action.Priority,
		"description": description,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode column values: %w", err)
	}

	req := graphql.NewRequest(createItemMutation)
	req.Var("board", c.cfg.MondayBoardID)
	req.Var("name", name)
	req.Var("cols", string(cols))
	req.Header.Set("Authorization", c.cfg.MondayAPIKey)

	var resp struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	if err := c.client.Run(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("create_item mutation failed: %w", err)
	}
	return resp.CreateItem.ID, nil
}
