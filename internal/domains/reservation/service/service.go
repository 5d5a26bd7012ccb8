package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"time"

	"mesa/config"
	"mesa/infras/otel"
	customerRepo "mesa/internal/domains/customer/repository"
	"mesa/internal/domains/reservation/model"
	"mesa/internal/domains/reservation/model/dto"
	"mesa/internal/domains/reservation/repository"
	scheduleModel "mesa/internal/domains/schedule/model"
	"mesa/internal/domains/schedule/policy"
	scheduleService "mesa/internal/domains/schedule/service"
	tableRepo "mesa/internal/domains/table/repository"
	tableService "mesa/internal/domains/table/service"
	"mesa/internal/events"
	"mesa/shared"
	"mesa/shared/cache"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Confirm(ctx context.Context, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	Remove(ctx context.Context, id string, force bool) error
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Today(ctx context.Context) (dto.GetReservationsResponse, error)
	FindAll(ctx context.Context, filter repository.Filter) (dto.GetReservationsResponse, error)
	DashboardOverview(ctx context.Context, date string, days int) (dto.DashboardOverviewResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	customerRepo customerRepo.Customer
	tableRepo    tableRepo.Table
	schedules    scheduleService.Schedule
	tables       tableService.Table
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	publisher    events.Publisher
}

func New(
	repo repository.Reservation,
	customerRepo customerRepo.Customer,
	tableRepo tableRepo.Table,
	schedules scheduleService.Schedule,
	tables tableService.Table,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		tableRepo:    tableRepo,
		schedules:    schedules,
		tables:       tables,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		publisher:    publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := req.ToModel()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	if err = s.validateReferences(ctx, reservation); err != nil {
		return res, err
	}

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	if err = normalizeSlot(&reservation, sched); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		if failure.IsSlotConflict(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.FromModel(reservation)
	s.afterMutation(ctx, events.TopicReservationCreated, reservation, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.mustGet(ctx, id)
	if err != nil {
		return res, err
	}

	if err = req.ApplyTo(&reservation); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	if err = s.validateReferences(ctx, reservation); err != nil {
		return res, err
	}

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	if err = normalizeSlot(&reservation, sched); err != nil {
		return res, err
	}

	reservation.UpdatedAt = timezone.Now()

	if err = s.repo.UpdateSlot(ctx, reservation); err != nil {
		if failure.IsSlotConflict(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	res.FromModel(reservation)
	s.afterMutation(ctx, events.TopicReservationUpdated, reservation, res)

	return res, nil
}

// Confirm overwrites the status unconditionally, including from
// terminal states. Admin corrections rely on this being permissive.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (dto.ReservationResponse, error) {
	return s.transition(ctx, id, model.StatusConfirmed, events.TopicReservationUpdated)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (dto.ReservationResponse, error) {
	return s.transition(ctx, id, model.StatusCancelled, events.TopicReservationCancelled)
}

func (s *serviceImpl) transition(ctx context.Context, id, status, topic string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.mustGet(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.repo.UpdateStatus(ctx, id, status); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return res, fmt.Errorf("failed to update reservation status: %w", err)
	}

	reservation.Status = status
	reservation.UpdatedAt = timezone.Now()

	res.FromModel(reservation)
	s.afterMutation(ctx, topic, reservation, res)

	return res, nil
}

// Remove deletes the reservation outright. Unless forced, only a
// reservation that has already ended may be removed.
func (s *serviceImpl) Remove(ctx context.Context, id string, force bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}

	if !force && !reservation.Finished(timezone.Now()) {
		return failure.Conflict(failure.CodeReservationNotFinished) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	var res dto.ReservationResponse

	res.FromModel(reservation)
	s.afterMutation(ctx, events.TopicReservationCancelled, reservation, res)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.mustGet(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

// Today lists all reservations starting within the current business
// day in the schedule timezone.
func (s *serviceImpl) Today(ctx context.Context) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Today")
	defer scope.End()
	defer scope.TraceIfError(err)

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	loc, err := sched.Location()
	if err != nil {
		return res, failure.BadRequestFromString("schedule timezone is invalid") //nolint:wrapcheck
	}

	dayStart := startOfDay(timezone.Now().In(loc))
	dayEnd := dayStart.AddDate(0, 0, 1)

	reservations, err := s.repo.FindStartingBetween(ctx, dayStart, dayEnd, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to get today reservations")

		return res, fmt.Errorf("failed to get today reservations: %w", err)
	}

	res.FromModels(reservations)

	return res, nil
}

func (s *serviceImpl) FindAll(ctx context.Context, filter repository.Filter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.FindAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if filter.Status != constant.Empty && !model.ValidStatus(filter.Status) {
		return res, failure.BadRequestFromString("unknown reservation status") //nolint:wrapcheck
	}

	reservations, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations)

	return res, nil
}

// DashboardOverview partitions reservations into the given local day
// (CONFIRMED only) and the following days grouped by date, plus the
// share of tables touched by a confirmed booking today.
func (s *serviceImpl) DashboardOverview(ctx context.Context, date string, days int) (res dto.DashboardOverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.DashboardOverview")
	defer scope.End()
	defer scope.TraceIfError(err)

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	loc, err := sched.Location()
	if err != nil {
		return res, failure.BadRequestFromString("schedule timezone is invalid") //nolint:wrapcheck
	}

	dayStart, err := time.ParseInLocation(constant.DayFormat, date, loc)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date, expected YYYY-MM-DD") //nolint:wrapcheck
	}

	if days < 1 {
		days = 1
	}

	dayEnd := dayStart.AddDate(0, 0, 1)

	notCancelled := []string{model.StatusPending, model.StatusConfirmed, model.StatusNoShow, model.StatusDone}

	// The occupancy percentage counts every table touched by a
	// non-cancelled reservation today; the card list below shows only
	// the confirmed ones.
	dayReservations, err := s.repo.FindStartingBetween(ctx, dayStart, dayEnd, notCancelled)
	if err != nil {
		log.Error().Err(err).Msg("failed to get today reservations")

		return res, fmt.Errorf("failed to get today reservations: %w", err)
	}

	upcoming, err := s.repo.FindStartingBetween(ctx, dayEnd, dayStart.AddDate(0, 0, days+1), notCancelled)
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming reservations")

		return res, fmt.Errorf("failed to get upcoming reservations: %w", err)
	}

	totalTables, err := s.tableRepo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, fmt.Errorf("failed to count tables: %w", err)
	}

	res.Date = date
	res.Today = []dto.ReservationResponse{}

	distinctTables := make(map[string]struct{})

	for _, reservation := range dayReservations {
		distinctTables[reservation.TableID] = struct{}{}

		if reservation.Status == model.StatusConfirmed {
			var entry dto.ReservationResponse

			entry.FromModel(reservation)
			res.Today = append(res.Today, entry)
		}
	}

	res.Upcoming = groupByDay(upcoming, loc)

	if totalTables > 0 {
		res.OccupancyPercent = int(math.Round(float64(len(distinctTables)) / float64(totalTables) * 100))
	}

	return res, nil
}

// groupByDay buckets reservations by their local calendar date,
// preserving chronological group order.
func groupByDay(reservations []model.Reservation, loc *time.Location) []dto.UpcomingGroup {
	groups := []dto.UpcomingGroup{}
	index := map[string]int{}

	for _, reservation := range reservations {
		day := reservation.StartsAt.In(loc).Format(constant.DayFormat)

		position, ok := index[day]
		if !ok {
			position = len(groups)
			index[day] = position
			groups = append(groups, dto.UpcomingGroup{Date: day})
		}

		var entry dto.ReservationResponse

		entry.FromModel(reservation)
		groups[position].Reservations = append(groups[position].Reservations, entry)
	}

	return groups
}

func (s *serviceImpl) mustGet(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	return reservation, nil
}

// validateReferences checks the customer and table the reservation
// points at: the customer must exist, the table must exist and be
// active, and the party must fit the table.
func (s *serviceImpl) validateReferences(ctx context.Context, reservation model.Reservation) error {
	exists, err := s.customerRepo.Exist(ctx, reservation.CustomerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exists {
		return failure.NotFound("customer not found") //nolint:wrapcheck
	}

	table, err := s.tableRepo.Get(ctx, reservation.TableID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty || !table.Active {
		return failure.BadRequestFromString("table does not exist or is inactive") //nolint:wrapcheck
	}

	if reservation.PartySize > table.Capacity {
		return failure.BadRequestFromString(fmt.Sprintf("party size exceeds table capacity of %d", table.Capacity)) //nolint:wrapcheck
	}

	return nil
}

// normalizeSlot applies the schedule rules to the candidate interval:
// the start must fall inside business hours, a missing end defaults to
// one slot after the start, and the interval's last minute must still
// be inside business hours.
func normalizeSlot(reservation *model.Reservation, sched scheduleModel.Schedule) error {
	if !policy.WithinSchedule(reservation.StartsAt, sched) {
		return failure.BadRequestFromString("start time is outside the business schedule") //nolint:wrapcheck
	}

	if reservation.EndsAt.IsZero() {
		reservation.EndsAt = policy.SlotEnd(reservation.StartsAt, sched.SlotMinutes)
	}

	if !reservation.EndsAt.After(reservation.StartsAt) {
		return failure.BadRequestFromString("end time must be after start time") //nolint:wrapcheck
	}

	if !policy.WithinSchedule(reservation.EndsAt.Add(-time.Minute), sched) {
		return failure.BadRequestFromString("end time is outside the business schedule") //nolint:wrapcheck
	}

	return nil
}

// afterMutation fans out the lifecycle event, the occupancy delta and
// a fresh snapshot, and drops read-side caches the mutation may have
// invalidated. Best effort throughout.
func (s *serviceImpl) afterMutation(ctx context.Context, topic string, reservation model.Reservation, payload dto.ReservationResponse) {
	s.publisher.Publish(ctx, topic, payload)
	s.publisher.Publish(ctx, events.TopicOccupancyChanged, events.OccupancyChange{
		TableID:  reservation.TableID,
		StartsAt: reservation.StartsAt,
		EndsAt:   reservation.EndsAt,
	})

	s.tables.PublishOccupancy(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, "availability")
		shared.InvalidateCaches(c, s.cache, "report")
	}()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
