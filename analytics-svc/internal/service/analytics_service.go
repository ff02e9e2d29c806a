package service

import (
	"context"
	"errors"
	"log"
	"time"

	"tableside/analytics-svc/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	topLimit   = 10
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

type AnalyticsService struct {
	store StoreInterface
	loc   *time.Location
	now   func() time.Time
}

func NewAnalyticsService(store StoreInterface, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{store: store, loc: loc, now: time.Now}
}

func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *AnalyticsService) TopToday(ctx context.Context) (*domain.DailyReport, error) {
	return s.Daily(ctx, s.now().In(s.loc).Format(dateLayout))
}

// Daily ranks the dishes ordered on date. Redis counters are used when they
// exist; otherwise the ranking is computed from the orders table.
func (s *AnalyticsService) Daily(ctx context.Context, date string) (*domain.DailyReport, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}

	top, err := s.store.TopDaily(ctx, date, topLimit)
	if err != nil {
		log.Printf("[analytics-svc] Redis read failed for %s, using database: %v", date, err)
	}
	if err == nil && len(top) > 0 {
		if err := s.attachNames(top); err != nil {
			return nil, err
		}
		return &domain.DailyReport{Date: date, Source: domain.SourceCache, Dishes: top}, nil
	}

	top, err = s.store.TopDailyFromDB(day, day.AddDate(0, 0, 1), topLimit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []domain.DishPopularity{}
	}
	return &domain.DailyReport{Date: date, Source: domain.SourceDatabase, Dishes: top}, nil
}

func (s *AnalyticsService) attachNames(top []domain.DishPopularity) error {
	ids := make([]int, len(top))
	for i, d := range top {
		ids[i] = d.DishID
	}
	names, err := s.store.DishNames(ids)
	if err != nil {
		return err
	}
	for i := range top {
		if name, ok := names[top[i].DishID]; ok {
			top[i].DishName = name
		} else {
			top[i].DishName = domain.UnknownDish
		}
	}
	return nil
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
