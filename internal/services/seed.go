package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/safebridge-api/internal/models"
	"github.com/harentsoaR/safebridge-api/internal/storage"
)

var demoUsers = []models.User{
	{Email: "responder@example.com", Password: "password123", Role: models.RoleFirstResponder, FullName: "John Responder", Location: "New York, NY"},
	{Email: "volunteer@example.com", Password: "password123", Role: models.RoleVolunteer, FullName: "Jane Volunteer", Location: "Boston, MA"},
	{Email: "individual@example.com", Password: "password123", Role: models.RoleAffectedIndividual, FullName: "Bob Individual", Location: "Chicago, IL"},
}

var sampleRequests = []struct {
	age time.Duration
	req models.EmergencyRequest
}{
	{30 * time.Minute, models.EmergencyRequest{Text: "Need medical assistance for an elderly person with diabetes", Urgency: "High", Type: "Medical", Location: "North District, Building 4", Status: models.StatusPending}},
	{2 * time.Hour, models.EmergencyRequest{Text: "Family of 4 needs shelter after apartment flooding", Urgency: "Medium", Type: "Shelter", Location: "Downtown area, near Central Park", Status: models.StatusProcessing}},
	{3 * time.Hour, models.EmergencyRequest{Text: "Running low on drinking water and basic supplies", Urgency: "Medium", Type: "Food", Location: "East Side, Apartment Complex B", Status: models.StatusPending}},
	{45 * time.Minute, models.EmergencyRequest{Text: "Need evacuation assistance, road is blocked by fallen tree", Urgency: "High", Type: "Evacuation", Location: "West Hills, Oak Street", Status: models.StatusPending}},
	{5 * time.Hour, models.EmergencyRequest{Text: "Looking for missing pet after storm", Urgency: "Low", Type: "Other", Location: "South District, Pine Avenue", Status: models.StatusResolved}},
}

// SeedDemoData fills empty user and request collections with demo fixtures.
// Collections that already hold data are left alone.
func SeedDemoData(ctx context.Context, store storage.Store, log *zap.SugaredLogger, now time.Time) error {
	users := store.Collection(storage.CollectionUsers)
	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n == 0 {
		for i := range demoUsers {
			u := demoUsers[i]
			if _, err := users.Insert(ctx, &u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
		}
		log.Infow("seeded demo users", "count", len(demoUsers))
	}

	requests := store.Collection(storage.CollectionRequests)
	n, err = requests.Count(ctx)
	if err != nil {
		return fmt.Errorf("count requests: %w", err)
	}
	if n == 0 {
		for _, sample := range sampleRequests {
			r := sample.req
			r.Timestamp = millis(now.Add(-sample.age))
			if _, err := requests.Insert(ctx, &r); err != nil {
				return fmt.Errorf("seed request: %w", err)
			}
		}
		log.Infow("seeded sample requests", "count", len(sampleRequests))
	}
	return nil
}
