// Package scenario stores saved project scenarios: an opaque configuration
// payload together with the results calculated from it.
package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/carbon-forecast/internal/forecast"
)

var (
	// ErrNotFound is returned when a scenario does not exist in a project.
	ErrNotFound = errors.New("scenario not found")

	// ErrMissingProject is returned when an operation has no project id.
	ErrMissingProject = errors.New("project id is required")
)

// Scenario is a saved calculation. Payload holds the configuration that
// produced Results and is not interpreted by the store.
type Scenario struct {
	ID        string            `json:"id"`
	ProjectID string            `json:"projectId"`
	Name      string            `json:"name"`
	Payload   json.RawMessage   `json:"payload,omitempty"`
	Results   *forecast.Results `json:"results,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store persists scenarios per project.
type Store interface {
	// Save stores s under projectID, assigning a new id when s has none,
	// and returns the stored scenario.
	Save(ctx context.Context, projectID string, s Scenario) (Scenario, error)
	// List returns the scenarios of a project ordered by creation time.
	List(ctx context.Context, projectID string) ([]Scenario, error)
	Get(ctx context.Context, projectID, scenarioID string) (Scenario, error)
	// Update replaces the name, payload and results of an existing
	// scenario. Its id, project and creation time are kept.
	Update(ctx context.Context, projectID, scenarioID string, s Scenario) (Scenario, error)
	Delete(ctx context.Context, projectID, scenarioID string) error
}

// Duplicate saves a copy of an existing scenario under a new id. An empty
// name defaults to the original name with a " (copy)" suffix.
func Duplicate(ctx context.Context, store Store, projectID, scenarioID, name string) (Scenario, error) {
	original, err := store.Get(ctx, projectID, scenarioID)
	if err != nil {
		return Scenario{}, err
	}

	copied := original
	copied.ID = ""
	copied.Name = strings.TrimSpace(name)
	if copied.Name == "" {
		copied.Name = original.Name + " (copy)"
	}
	copied.Payload = append(json.RawMessage(nil), original.Payload...)
	return store.Save(ctx, projectID, copied)
}

func prepareNew(projectID string, s Scenario, now time.Time) (Scenario, error) {
	if strings.TrimSpace(projectID) == "" {
		return Scenario{}, ErrMissingProject
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	} else if _, err := uuid.Parse(s.ID); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario id %q: %w", s.ID, err)
	}
	s.ProjectID = projectID
	s.CreatedAt = now
	s.UpdatedAt = now
	return s, nil
}

func prepareUpdate(existing, s Scenario, now time.Time) Scenario {
	existing.Name = s.Name
	existing.Payload = s.Payload
	existing.Results = s.Results
	existing.UpdatedAt = now
	return existing
}

func sortScenarios(scenarios []Scenario) {
	sort.Slice(scenarios, func(i, j int) bool {
		if !scenarios[i].CreatedAt.Equal(scenarios[j].CreatedAt) {
			return scenarios[i].CreatedAt.Before(scenarios[j].CreatedAt)
		}
		return scenarios[i].ID < scenarios[j].ID
	})
}
