package services

import (
	"context"
	"sync"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
)

// In-memory repository fakes for service tests.

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = len(f.users) + 1
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	out := make([]*models.User, 0)
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	match.ID = len(f.matches) + 1
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

func (f *fakeMatchRepo) List(ctx context.Context, finishedOnly bool) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if !finishedOnly || m.Finished {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) Update(ctx context.Context, match *models.Match) error {
	if _, ok := f.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) UpdateResult(ctx context.Context, id int, homeScore, awayScore int) error {
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.Finished = true
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(f.matches, id)
	return nil
}

type fakeMatchPredictionRepo struct {
	predictions []*models.MatchPrediction
}

func (f *fakeMatchPredictionRepo) Upsert(ctx context.Context, p *models.MatchPrediction) error {
	for _, existing := range f.predictions {
		if existing.UserID == p.UserID && existing.MatchID == p.MatchID {
			existing.HomeScore = p.HomeScore
			existing.AwayScore = p.AwayScore
			p.ID = existing.ID
			return nil
		}
	}
	p.ID = len(f.predictions) + 1
	f.predictions = append(f.predictions, p)
	return nil
}

func (f *fakeMatchPredictionRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchPrediction, error) {
	out := make([]*models.MatchPrediction, 0)
	for _, p := range f.predictions {
		if p.MatchID == matchID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeMatchPredictionRepo) ListByUser(ctx context.Context, userID int) ([]*models.MatchPrediction, error) {
	out := make([]*models.MatchPrediction, 0)
	for _, p := range f.predictions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeMatchPredictionRepo) ListAll(ctx context.Context) ([]*models.MatchPrediction, error) {
	return f.predictions, nil
}

type fakeGroupPredictionRepo struct {
	predictions []*models.GroupPrediction
}

func (f *fakeGroupPredictionRepo) Upsert(ctx context.Context, p *models.GroupPrediction) error {
	for _, existing := range f.predictions {
		if existing.UserID == p.UserID && existing.GroupID == p.GroupID {
			existing.FirstTeamID = p.FirstTeamID
			existing.SecondTeamID = p.SecondTeamID
			p.ID = existing.ID
			return nil
		}
	}
	p.ID = len(f.predictions) + 1
	f.predictions = append(f.predictions, p)
	return nil
}

func (f *fakeGroupPredictionRepo) ListByGroup(ctx context.Context, groupID int) ([]*models.GroupPrediction, error) {
	out := make([]*models.GroupPrediction, 0)
	for _, p := range f.predictions {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGroupPredictionRepo) ListByUser(ctx context.Context, userID int) ([]*models.GroupPrediction, error) {
	out := make([]*models.GroupPrediction, 0)
	for _, p := range f.predictions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGroupPredictionRepo) ListAll(ctx context.Context) ([]*models.GroupPrediction, error) {
	return f.predictions, nil
}

type fakeFinalPredictionRepo struct {
	predictions []*models.FinalPrediction
}

func (f *fakeFinalPredictionRepo) Upsert(ctx context.Context, p *models.FinalPrediction) error {
	for i, existing := range f.predictions {
		if existing.UserID == p.UserID {
			p.ID = existing.ID
			f.predictions[i] = p
			return nil
		}
	}
	p.ID = len(f.predictions) + 1
	f.predictions = append(f.predictions, p)
	return nil
}

func (f *fakeFinalPredictionRepo) GetByUser(ctx context.Context, userID int) (*models.FinalPrediction, error) {
	for _, p := range f.predictions {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrFinalPredictionNotFound
}

func (f *fakeFinalPredictionRepo) ListAll(ctx context.Context) ([]*models.FinalPrediction, error) {
	return f.predictions, nil
}

type fakeGroupResultRepo struct {
	results map[int]*models.GroupResult
}

func (f *fakeGroupResultRepo) Upsert(ctx context.Context, result *models.GroupResult) error {
	if existing, ok := f.results[result.GroupID]; ok {
		result.ID = existing.ID
	} else {
		result.ID = len(f.results) + 1
	}
	f.results[result.GroupID] = result
	return nil
}

func (f *fakeGroupResultRepo) GetByGroup(ctx context.Context, groupID int) (*models.GroupResult, error) {
	result, ok := f.results[groupID]
	if !ok {
		return nil, repositories.ErrGroupResultNotFound
	}
	return result, nil
}

func (f *fakeGroupResultRepo) ListCompleted(ctx context.Context) ([]*models.GroupResult, error) {
	out := make([]*models.GroupResult, 0)
	for _, r := range f.results {
		if r.Completed {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTournamentResultRepo struct {
	result *models.TournamentResult
}

func (f *fakeTournamentResultRepo) Upsert(ctx context.Context, result *models.TournamentResult) error {
	result.ID = 1
	f.result = result
	return nil
}

func (f *fakeTournamentResultRepo) Get(ctx context.Context) (*models.TournamentResult, error) {
	if f.result == nil {
		return nil, repositories.ErrTournamentResultNotFound
	}
	return f.result, nil
}

// fakeLedgerRepo mirrors the unique (prediction, category) key of the
// real table. It is mutex-guarded because the aggregator writes entries
// concurrently.
type fakeLedgerRepo struct {
	mu          sync.Mutex
	entries     map[models.PointsCategory]map[int]*models.PointsLedgerEntry
	totals      map[int]int
	upsertErr   error
	totalWrites int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		entries: make(map[models.PointsCategory]map[int]*models.PointsLedgerEntry),
		totals:  make(map[int]int),
	}
}

func (f *fakeLedgerRepo) UpsertEntry(ctx context.Context, entry *models.PointsLedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	byPrediction, ok := f.entries[entry.Category]
	if !ok {
		byPrediction = make(map[int]*models.PointsLedgerEntry)
		f.entries[entry.Category] = byPrediction
	}
	byPrediction[entry.PredictionID] = entry
	return nil
}

func (f *fakeLedgerRepo) ListByUser(ctx context.Context, userID int) ([]*models.PointsLedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.PointsLedgerEntry, 0)
	for _, byPrediction := range f.entries {
		for _, entry := range byPrediction {
			if entry.UserID == userID {
				out = append(out, entry)
			}
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SumPointsByUser(ctx context.Context, userID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0
	for _, byPrediction := range f.entries {
		for _, entry := range byPrediction {
			if entry.UserID == userID {
				sum += entry.Points
			}
		}
	}
	return sum, nil
}

func (f *fakeLedgerRepo) SetUserTotal(ctx context.Context, userID, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.totalWrites++
	f.totals[userID] = points
	return nil
}

func (f *fakeLedgerRepo) GetUserTotal(ctx context.Context, userID int) (*models.UserTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.UserTotal{UserID: userID, Points: f.totals[userID]}, nil
}

func (f *fakeLedgerRepo) entryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, byPrediction := range f.entries {
		n += len(byPrediction)
	}
	return n
}
