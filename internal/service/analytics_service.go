package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/grading"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/scope"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

// AnalyticsRepository describes the persistence layer required by AnalyticsService.
type AnalyticsRepository interface {
	SchoolCount(ctx context.Context, filter models.AnalyticsFilter) (int, error)
	StudentCount(ctx context.Context, filter models.AnalyticsFilter) (int, error)
	ExamCount(ctx context.Context, filter models.AnalyticsFilter) (int, error)
	StudentAggregates(ctx context.Context, filter models.AnalyticsFilter) ([]models.StudentAggregate, error)
	ChildStudentAggregates(ctx context.Context, level models.DrillLevel, parentID, examID string) ([]models.ChildStudentAggregate, error)
	StudentMarks(ctx context.Context, schoolID, examID string) ([]models.StudentMarkRow, error)
	EntityCounts(ctx context.Context, filter models.AnalyticsFilter) (*models.AdminStats, error)
}

// officialCounter reports active account counts by role for the admin view.
type officialCounter interface {
	CountByRole(ctx context.Context) (map[string]int, error)
}

// AnalyticsService turns per-student aggregates into the dashboard views.
// Whatever the view, the unit of aggregation is the student: a student's
// score is the mean of their subject percentages, a student passes only when
// their weakest subject clears the pass threshold, and entity scores average
// the student scores rather than the raw marks.
type AnalyticsService struct {
	repo    AnalyticsRepository
	users   officialCounter
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(repo AnalyticsRepository, users officialCounter, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, users: users, cache: cache, metrics: metrics, logger: logger}
}

// Stats returns the scoped dashboard summary: entity counts plus the
// per-student coarse grade census.
func (s *AnalyticsService) Stats(ctx context.Context, caller *models.JWTClaims, query models.AnalyticsFilter) (*models.StatSummary, error) {
	filter := s.resolveFilter(caller, query)

	cacheKey := analyticsCacheKey("stats", filter.DistrictID, filter.MandalID, filter.SchoolID, filter.ExamID)
	var cached models.StatSummary
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	summary := &models.StatSummary{}
	var err error
	if summary.TotalSchools, err = s.repo.SchoolCount(ctx, filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count schools")
	}
	if summary.TotalStudents, err = s.repo.StudentCount(ctx, filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	if summary.TotalExams, err = s.repo.ExamCount(ctx, filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count exams")
	}

	start := time.Now()
	aggregates, err := s.repo.StudentAggregates(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate marks")
	}
	s.metrics.ObserveQuery("analytics_stats", time.Since(start))

	summary.AvgScore, summary.PassPercentage = summarise(aggregates)
	for _, agg := range aggregates {
		switch grading.CoarseFromPercent(agg.AvgPercent) {
		case "A":
			summary.GradeAStudents++
		case "B":
			summary.GradeBStudents++
		case "C":
			summary.GradeCStudents++
		default:
			summary.GradeDStudents++
		}
	}

	if err := s.cache.Set(ctx, cacheKey, summary, 0); err != nil {
		s.logger.Warn("cache stats", zap.Error(err))
	}
	return summary, nil
}

// EntityPerformance returns one chart row per child entity of the caller's
// effective position, ordered by name.
func (s *AnalyticsService) EntityPerformance(ctx context.Context, caller *models.JWTClaims, query models.AnalyticsFilter) ([]models.EntityPerformanceRow, error) {
	filter := s.resolveFilter(caller, query)
	level, parentID := childLevelFor(filter)

	cacheKey := analyticsCacheKey("performance", string(level), parentID, filter.ExamID)
	var cached []models.EntityPerformanceRow
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	start := time.Now()
	aggregates, err := s.repo.ChildStudentAggregates(ctx, level, parentID, filter.ExamID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate marks")
	}
	s.metrics.ObserveQuery("analytics_performance", time.Since(start))

	rows := []models.EntityPerformanceRow{}
	for _, group := range groupByEntity(aggregates) {
		avg, pass := summarise(group.students)
		rows = append(rows, models.EntityPerformanceRow{
			EntityID:       group.id,
			EntityName:     group.name,
			AvgScore:       avg,
			PassPercentage: pass,
			StudentCount:   len(group.students),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EntityName < rows[j].EntityName })

	if err := s.cache.Set(ctx, cacheKey, rows, 0); err != nil {
		s.logger.Warn("cache performance", zap.Error(err))
	}
	return rows, nil
}

// DrillDown returns one rollup row per child of the named parent, worst pass
// percentage first so struggling entities surface at the top. Unknown levels
// and levels with no children produce an empty slice, not an error. A level
// senior to the caller's own position is clamped down to it, so a district
// officer asking for the root rollup sees their district's children and a
// mandal officer asking for a district rollup sees their mandal's.
func (s *AnalyticsService) DrillDown(ctx context.Context, caller *models.JWTClaims, level models.DrillLevel, parentID, examID string) ([]models.DrillDownRow, error) {
	own, ownParent := childLevelFor(s.resolveFilter(caller, models.AnalyticsFilter{}))
	if drillRank(level) < drillRank(own) {
		level, parentID = own, ownParent
	} else if err := s.authorizeDrill(caller, level, parentID); err != nil {
		return nil, err
	}

	cacheKey := analyticsCacheKey("drilldown", string(level), parentID, examID)
	var cached []models.DrillDownRow
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	start := time.Now()
	aggregates, err := s.repo.ChildStudentAggregates(ctx, level, parentID, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate marks")
	}
	s.metrics.ObserveQuery("analytics_drilldown", time.Since(start))

	rows := []models.DrillDownRow{}
	for _, group := range groupByEntity(aggregates) {
		avg, pass := summarise(group.students)
		gradeA := 0
		for _, st := range group.students {
			gradeA += st.GradeAMark
		}
		rows = append(rows, models.DrillDownRow{
			EntityID:       group.id,
			EntityName:     group.name,
			AvgScore:       avg,
			PassPercentage: pass,
			GradeACount:    gradeA,
			StudentCount:   len(group.students),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PassPercentage != rows[j].PassPercentage {
			return rows[i].PassPercentage < rows[j].PassPercentage
		}
		return rows[i].EntityName < rows[j].EntityName
	})

	if err := s.cache.Set(ctx, cacheKey, rows, 0); err != nil {
		s.logger.Warn("cache drilldown", zap.Error(err))
	}
	return rows, nil
}

// StudentMarks returns the flat marks grid for one school.
func (s *AnalyticsService) StudentMarks(ctx context.Context, caller *models.JWTClaims, schoolID, examID string) ([]models.StudentMarkRow, error) {
	if schoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school_id is required")
	}
	if err := scope.Authorize(scope.FromClaims(caller), scope.FromQuery("", "", schoolID)); err != nil {
		return nil, err
	}

	rows, err := s.repo.StudentMarks(ctx, schoolID, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch marks")
	}
	if rows == nil {
		rows = []models.StudentMarkRow{}
	}
	return rows, nil
}

// AdminStats returns scoped entity counts for the landing dashboard. Admins
// additionally get the per-role account census; the view still renders if
// that count fails.
func (s *AnalyticsService) AdminStats(ctx context.Context, caller *models.JWTClaims) (*models.AdminStats, error) {
	filter := s.resolveFilter(caller, models.AnalyticsFilter{})
	stats, err := s.repo.EntityCounts(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count entities")
	}
	if caller.Role == models.RoleAdmin && s.users != nil {
		officials, err := s.users.CountByRole(ctx)
		if err != nil {
			s.logger.Warn("count officials by role", zap.Error(err))
		} else {
			stats.Officials = officials
		}
	}
	return stats, nil
}

// resolveFilter merges caller scope over the query filters.
func (s *AnalyticsService) resolveFilter(caller *models.JWTClaims, query models.AnalyticsFilter) models.AnalyticsFilter {
	eff := scope.Resolve(scope.FromClaims(caller), scope.FromQuery(query.DistrictID, query.MandalID, query.SchoolID))
	out := models.AnalyticsFilter{ExamID: query.ExamID}
	out.DistrictID, out.MandalID, out.SchoolID = eff.Filter()
	return out
}

// authorizeDrill checks that the drill parent lies inside the caller's
// jurisdiction at the requested level.
func (s *AnalyticsService) authorizeDrill(caller *models.JWTClaims, level models.DrillLevel, parentID string) error {
	target := scope.Scope{}
	switch level {
	case models.LevelDistrict:
		target = scope.FromQuery(parentID, "", "")
	case models.LevelMandal:
		target = scope.FromQuery("", parentID, "")
	case models.LevelSchool:
		target = scope.FromQuery("", "", parentID)
	}
	return scope.Authorize(scope.FromClaims(caller), target)
}

// drillRank orders drill levels root-first; unknown levels sort junior to
// everything so they still fall through to the empty result.
func drillRank(level models.DrillLevel) int {
	switch level {
	case models.LevelRoot:
		return 0
	case models.LevelDistrict:
		return 1
	case models.LevelMandal:
		return 2
	case models.LevelSchool:
		return 3
	default:
		return 4
	}
}

// childLevelFor maps an effective position onto the drill level whose
// children should be charted. A school-scoped caller has no child entities.
func childLevelFor(filter models.AnalyticsFilter) (models.DrillLevel, string) {
	switch {
	case filter.SchoolID != "":
		return models.LevelSchool, filter.SchoolID
	case filter.MandalID != "":
		return models.LevelMandal, filter.MandalID
	case filter.DistrictID != "":
		return models.LevelDistrict, filter.DistrictID
	default:
		return models.LevelRoot, ""
	}
}

type entityGroup struct {
	id       string
	name     string
	students []models.StudentAggregate
}

// groupByEntity buckets child aggregates per entity, preserving first-seen
// order.
func groupByEntity(aggregates []models.ChildStudentAggregate) []entityGroup {
	index := map[string]int{}
	groups := []entityGroup{}
	for _, agg := range aggregates {
		i, ok := index[agg.EntityID]
		if !ok {
			i = len(groups)
			index[agg.EntityID] = i
			groups = append(groups, entityGroup{id: agg.EntityID, name: agg.EntityName})
		}
		groups[i].students = append(groups[i].students, models.StudentAggregate{
			StudentID:  agg.StudentID,
			AvgPercent: agg.AvgPercent,
			MinPercent: agg.MinPercent,
			GradeAMark: agg.GradeAMark,
		})
	}
	return groups
}

// summarise computes the average-of-student-averages and the whole-student
// pass percentage for one population, both rounded to two decimals.
func summarise(students []models.StudentAggregate) (avgScore, passPercentage float64) {
	if len(students) == 0 {
		return 0, 0
	}
	var sum float64
	passed := 0
	for _, st := range students {
		sum += st.AvgPercent
		if st.MinPercent >= grading.PassThreshold {
			passed++
		}
	}
	avgScore = round2(sum / float64(len(students)))
	passPercentage = round2(float64(passed) / float64(len(students)) * 100)
	return avgScore, passPercentage
}

func analyticsCacheKey(parts ...string) string {
	sanitised := make([]string, 0, len(parts)+1)
	sanitised = append(sanitised, "analytics")
	for _, part := range parts {
		if part == "" {
			part = "-"
		}
		sanitised = append(sanitised, part)
	}
	return strings.Join(sanitised, ":")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
