package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/pkg/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	modeFull      = "full"
	modeRecommend = "recommend"

	DefaultRecommendationLimit = 10
	MaxRecommendationLimit     = 50
	DefaultMinScore            = 30.0
)

type RecommendationRequest struct {
	// Limit of returned candidates. Zero selects the configured default.
	Limit int
	// MinScore on the total score. Nil selects DefaultMinScore.
	MinScore   *float64
	Department string
	Weights    matching.RawWeights
}

type Recommendations struct {
	Project         matching.ProjectSummary `json:"project"`
	Recommendations []matching.Candidate    `json:"recommendations"`
	TotalCandidates int                     `json:"total_candidates"`
	WeightsUsed     matching.Weights        `json:"weights_used"`
}

type MatchingUsecase interface {
	RunMatching(ctx context.Context, projectID uuid.UUID, weights matching.RawWeights) (matching.Result, error)
	Recommend(ctx context.Context, projectID uuid.UUID, req RecommendationRequest) (Recommendations, error)
}

type MatchingOptions struct {
	// CacheTTL of stored results. Zero disables the result cache.
	CacheTTL     time.Duration
	DefaultLimit int
	// RunTimeout bounds one shared snapshot load and computation.
	RunTimeout time.Duration
}

const DefaultRunTimeout = 30 * time.Second

type Matching struct {
	repo     repository.MatchingRepository
	cache    ResultCache
	notifier MatchingNotifier
	opts     MatchingOptions
	logger   *zap.Logger

	group singleflight.Group
	now   func() time.Time
}

func NewMatchingUsecase(repo repository.MatchingRepository, cache ResultCache, notifier MatchingNotifier, opts MatchingOptions, log *zap.Logger) *Matching {
	if opts.DefaultLimit <= 0 || opts.DefaultLimit > MaxRecommendationLimit {
		opts.DefaultLimit = DefaultRecommendationLimit
	}
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = DefaultRunTimeout
	}
	return &Matching{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		opts:     opts,
		logger:   logger.OrNop(log),
		now:      time.Now,
	}
}

func (u *Matching) RunMatching(ctx context.Context, projectID uuid.UUID, raw matching.RawWeights) (matching.Result, error) {
	w, err := normalizeRequestWeights(raw)
	if err != nil {
		return matching.Result{}, err
	}

	key := MatchingKey{
		ProjectID:    projectID,
		Mode:         modeFull,
		Skill:        w.Skill,
		Experience:   w.Experience,
		Availability: w.Availability,
	}

	return cachedRun(ctx, u, key, repository.PoolFilter{}, func(in matching.Input) (matching.Result, error) {
		in.Weights = raw
		return matching.Run(in)
	})
}

func (u *Matching) Recommend(ctx context.Context, projectID uuid.UUID, req RecommendationRequest) (Recommendations, error) {
	w, err := normalizeRequestWeights(req.Weights)
	if err != nil {
		return Recommendations{}, err
	}

	limit := req.Limit
	switch {
	case limit < 0 || limit > MaxRecommendationLimit:
		return Recommendations{}, fmt.Errorf("%w: limit must be within [1,%d]", ErrInvalidInput, MaxRecommendationLimit)
	case limit == 0:
		limit = u.opts.DefaultLimit
	}

	minScore := DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	if math.IsNaN(minScore) || minScore < 0 || minScore > 100 {
		return Recommendations{}, fmt.Errorf("%w: min_score must be within [0,100]", ErrInvalidInput)
	}

	key := MatchingKey{
		ProjectID:    projectID,
		Mode:         modeRecommend,
		Skill:        w.Skill,
		Experience:   w.Experience,
		Availability: w.Availability,
		Department:   req.Department,
		Limit:        limit,
		MinScore:     minScore,
	}

	filter := repository.PoolFilter{Department: req.Department}
	return cachedRun(ctx, u, key, filter, func(in matching.Input) (Recommendations, error) {
		in.Weights = req.Weights
		ranked, used, err := matching.Recommend(in, matching.RecommendOptions{Limit: limit, MinScore: minScore})
		if err != nil {
			return Recommendations{}, err
		}
		return Recommendations{
			Project:         matching.Summarize(in.Project, in.Catalog),
			Recommendations: ranked,
			TotalCandidates: len(in.Candidates),
			WeightsUsed:     used,
		}, nil
	})
}

// cachedRun resolves the project and the data fingerprint, serves a stored
// result when one matches, and otherwise loads a snapshot and runs compute on
// it. Identical concurrent requests share one computation.
func cachedRun[T any](ctx context.Context, u *Matching, key MatchingKey, filter repository.PoolFilter, compute func(matching.Input) (T, error)) (T, error) {
	var zero T
	if key.ProjectID == uuid.Nil {
		return zero, ErrProjectNotFound
	}

	var version string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := u.repo.GetProject(gctx, key.ProjectID)
		return err
	})
	g.Go(func() error {
		v, err := u.repo.DataVersion(gctx)
		version = v
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return zero, ErrProjectNotFound
		}
		u.logger.Error("matching lookup failed", zap.Stringer("project_id", key.ProjectID), zap.Error(err))
		return zero, ErrInternal
	}

	now := u.now().UTC().Truncate(24 * time.Hour)
	key.DataVersion = version
	key.Day = now.Format(time.DateOnly)
	cacheKey := key.String()
	useCache := u.cache != nil && u.opts.CacheTTL > 0

	if useCache {
		var hit T
		found, err := u.cache.GetJSON(ctx, cacheKey, &hit)
		if err != nil {
			u.logger.Warn("matching cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
		if found {
			u.logger.Debug("matching cache hit", zap.String("key", cacheKey))
			return hit, nil
		}
	}

	// The shared run outlives any single caller: a waiter that goes away must not
	// fail the others that joined the same key.
	ch := u.group.DoChan(cacheKey, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.RunTimeout)
		defer cancel()

		snap, err := u.repo.LoadSnapshot(runCtx, key.ProjectID, filter)
		if err != nil {
			return nil, err
		}
		res, err := compute(buildInput(snap, now))
		if err != nil {
			return nil, err
		}
		if useCache {
			if err := u.cache.SetJSON(runCtx, cacheKey, res, u.opts.CacheTTL); err != nil {
				u.logger.Warn("matching cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		if u.notifier != nil {
			u.notifier.MatchingCompleted(key.ProjectID)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, u.mapEngineErr(key.ProjectID, r.Err)
		}
		return r.Val.(T), nil
	}
}

func (u *Matching) mapEngineErr(projectID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, matching.ErrEmptyPool):
		return ErrNoCandidates
	case errors.Is(err, matching.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, matching.ErrInconsistentData):
		u.logger.Error("matching data inconsistent", zap.Stringer("project_id", projectID), zap.Error(err))
		return err
	default:
		u.logger.Error("matching failed", zap.Stringer("project_id", projectID), zap.Error(err))
		return ErrInternal
	}
}

func normalizeRequestWeights(raw matching.RawWeights) (matching.Weights, error) {
	w, err := matching.NormalizeWeights(raw)
	if err != nil {
		return matching.Weights{}, fmt.Errorf("%w: %w", ErrInvalidWeights, err)
	}
	return w, nil
}

// buildInput groups the flat snapshot rows per candidate.
func buildInput(snap repository.MatchingSnapshot, now time.Time) matching.Input {
	reqs := make([]matching.Requirement, 0, len(snap.Requirements))
	for _, r := range snap.Requirements {
		reqs = append(reqs, matching.Requirement{
			SkillID:         r.SkillID,
			ImportanceLevel: r.ImportanceLevel,
			RequiredLevel:   r.RequiredLevel,
		})
	}

	catalog := make(map[uuid.UUID]matching.Skill, len(snap.Catalog))
	for _, s := range snap.Catalog {
		catalog[s.ID] = matching.Skill{ID: s.ID, Name: s.Name, Category: s.Category}
	}

	skills := make(map[uuid.UUID][]matching.EmployeeSkill, len(snap.Candidates))
	for _, es := range snap.EmployeeSkills {
		skills[es.EmployeeID] = append(skills[es.EmployeeID], matching.EmployeeSkill{
			SkillID:          es.SkillID,
			ProficiencyLevel: es.ProficiencyLevel,
			YearsExperience:  es.YearsExperience,
		})
	}

	history := make(map[uuid.UUID][]matching.Assignment, len(snap.Candidates))
	for _, a := range snap.Assignments {
		history[a.EmployeeID] = append(history[a.EmployeeID], matching.Assignment{
			ProjectID:  a.ProjectID,
			ClientID:   a.ClientID,
			Status:     a.Status,
			Allocation: a.Allocation,
			EndDate:    a.EndDate,
			SkillIDs:   a.SkillIDs,
		})
	}

	candidates := make([]matching.CandidateInput, 0, len(snap.Candidates))
	for _, c := range snap.Candidates {
		candidates = append(candidates, matching.CandidateInput{
			Employee: matching.Employee{
				ID:         c.ID,
				Name:       c.Name,
				Email:      c.Email,
				Department: c.Department,
				Position:   c.Position,
			},
			Skills:  skills[c.ID],
			History: history[c.ID],
		})
	}

	return matching.Input{
		Project: matching.Project{
			ID:           snap.Project.ID,
			Name:         snap.Project.Name,
			ClientID:     snap.Project.ClientID,
			Requirements: reqs,
		},
		Catalog:    catalog,
		Candidates: candidates,
		Now:        now,
	}
}
