// Package seed resets the store to a demo data set: one known user owning a
// batch of random leads.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"lead_tracker/internal/model"
	"lead_tracker/internal/repository"
	"lead_tracker/internal/utils"

	"github.com/google/uuid"
)

const (
	DemoEmail    = "test@erino.io"
	DemoPassword = "test1234"
	DemoLeads    = 150
)

var (
	firstNames  = []string{"Ada", "Grace", "Alan", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Edsger", "Radia", "Donald"}
	lastNames   = []string{"Lovelace", "Hopper", "Turing", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Allen", "Dijkstra", "Perlman", "Knuth"}
	companies   = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries", "Wayne Enterprises", "Soylent", "Tyrell", "Cyberdyne"}
	mailDomains = []string{"example.com", "mail.test", "corp.example", "inbox.test"}

	places = []struct{ city, state string }{
		{"Austin", "Texas"}, {"Denver", "Colorado"}, {"Portland", "Oregon"}, {"Boston", "Massachusetts"},
		{"Seattle", "Washington"}, {"Chicago", "Illinois"}, {"Miami", "Florida"}, {"Phoenix", "Arizona"},
	}
)

// Seeder wipes all users and leads and recreates the demo data set
type Seeder struct {
	users  repository.UserRepository
	leads  repository.LeadRepository
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger
}

// NewSeeder creates a Seeder. A nil rng means a randomly seeded one.
func NewSeeder(users repository.UserRepository, leads repository.LeadRepository, rng *rand.Rand, logger *slog.Logger) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Seeder{users: users, leads: leads, rng: rng, now: time.Now, logger: logger}
}

// Run deletes everything, then creates the demo user and its leads
func (s *Seeder) Run(ctx context.Context) (*model.User, error) {
	if err := s.leads.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear leads: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear users: %w", err)
	}

	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user := &model.User{
		ID:           uuid.New(),
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}

	leads := make([]model.Lead, DemoLeads)
	for i := range leads {
		leads[i] = s.randomLead(user.ID)
	}
	n, err := s.leads.CreateMany(ctx, leads)
	if err != nil {
		return nil, fmt.Errorf("failed to insert demo leads: %w", err)
	}

	s.logger.InfoContext(ctx, "database seeded", slog.String("email", user.Email), slog.Int64("leads", n))
	return user, nil
}

func (s *Seeder) randomLead(ownerID uuid.UUID) model.Lead {
	now := s.now().UTC()
	first := pick(s.rng, firstNames)
	last := pick(s.rng, lastNames)
	place := pick(s.rng, places)
	// recent activity within the last week
	activity := now.Add(-time.Duration(s.rng.Int64N(int64(7 * 24 * time.Hour))))
	created := now.Add(-time.Duration(s.rng.Int64N(int64(90 * 24 * time.Hour))))

	return model.Lead{
		ID:             uuid.New(),
		UserID:         ownerID,
		FirstName:      first,
		LastName:       last,
		Email:          fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), s.rng.IntN(1000), pick(s.rng, mailDomains)),
		Phone:          fmt.Sprintf("+1-%03d-%03d-%04d", 200+s.rng.IntN(800), s.rng.IntN(1000), s.rng.IntN(10000)),
		Company:        pick(s.rng, companies),
		City:           place.city,
		State:          place.state,
		Source:         pick(s.rng, model.LeadSources),
		Status:         pick(s.rng, model.LeadStatuses),
		Score:          s.rng.IntN(101),
		LeadValue:      float64(1000 + s.rng.IntN(99001)),
		LastActivityAt: &activity,
		IsQualified:    s.rng.IntN(2) == 1,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
