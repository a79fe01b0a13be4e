package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StaffService/internal/service/staff/models"
)

// Service сервис для работы с сотрудниками
type Service struct {
	staffRepo    StaffRepository
	scheduleRepo ScheduleRepository
	timeOffRepo  TimeOffRepository
	txManager    TransactionManager
	defaults     domain.StaffDefaults
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	staffRepo StaffRepository,
	scheduleRepo ScheduleRepository,
	timeOffRepo TimeOffRepository,
	txManager TransactionManager,
	defaults domain.StaffDefaults,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		timeOffRepo:  timeOffRepo,
		txManager:    txManager,
		defaults:     defaults,
		logger:       logger,
	}
}

// Create создает сотрудника. Табельный номер генерируется автоматически,
// если не передан. Вместе с сотрудником в одной транзакции создаётся
// расписание по умолчанию: Пн-Пт рабочие с настройками из конфигурации,
// Сб-Вс выходные.
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: creating staff member %s %s", req.FirstName, req.LastName)

	member, err := s.buildStaffMember(req)
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, err
	}

	var created *domain.StaffMember
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if member.EmployeeID == "" {
			number, err := s.staffRepo.NextEmployeeNumber(ctx)
			if err != nil {
				return fmt.Errorf("%w: Create - generate employee id: %v", ErrInternal, err)
			}
			member.EmployeeID = fmt.Sprintf("EMP-%04d", number)
		}

		created, err = s.staffRepo.Create(ctx, member)
		if err != nil {
			if errors.Is(err, staffRepo.ErrDuplicateEmployeeID) {
				return ErrDuplicateEmployeeID
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		return s.createDefaultSchedule(ctx, created.ID)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmployeeID) {
			s.logger.Warn("Create: employee id %s already in use", member.EmployeeID)
			return nil, ErrDuplicateEmployeeID
		}
		s.logger.Error("Create: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created staff member id=%d, employee_id=%s", created.ID, created.EmployeeID)
	return models.FromDomainStaff(created), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("GetByID: staff member id=%d not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetByID: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaff(member), nil
}

// List получает список сотрудников с фильтрацией и поиском
func (s *Service) List(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error) {
	s.logger.Info("List: fetching staff, query=%q", req.Query)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	staff, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d staff members", len(staff))
	return models.FromDomainStaffList(staff), nil
}

// Update частично обновляет сотрудника. Поля со значением nil не меняются.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: updating staff member id=%d", id)

	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Update: staff member id=%d not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.applyPatch(member, req); err != nil {
		s.logger.Warn("Update: invalid patch for staff id=%d: %v", id, err)
		return nil, err
	}

	if err := s.staffRepo.Update(ctx, member); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated staff member id=%d", id)
	return models.FromDomainStaff(member), nil
}

// ChangeStatus меняет статус сотрудника.
// При переводе в terminated проставляется дата увольнения и снимается
// флаг доступности для записи. При возврате в active флаг доступности
// не восстанавливается автоматически.
func (s *Service) ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) error {
	s.logger.Info("ChangeStatus: changing status of staff id=%d to %s", id, req.Status)

	status, err := models.ToDomainStaffStatus(req.Status)
	if err != nil {
		s.logger.Warn("ChangeStatus: invalid status=%s for staff id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	var terminationDate *time.Time
	var isBookable *bool

	if status == domain.StaffStatusTerminated {
		date := time.Now()
		if req.TerminationDate != nil {
			parsed, err := time.Parse(domain.DateFormat, *req.TerminationDate)
			if err != nil {
				s.logger.Warn("ChangeStatus: invalid termination date %q for staff id=%d", *req.TerminationDate, id)
				return fmt.Errorf("%w: invalid termination date", ErrInvalidInput)
			}
			date = parsed
		}
		terminationDate = &date

		notBookable := false
		isBookable = &notBookable
	}

	if err := s.staffRepo.UpdateStatus(ctx, id, status, terminationDate, isBookable); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("ChangeStatus: staff member id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("ChangeStatus: repository error for staff id=%d: %v", id, err)
		return fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ChangeStatus: successfully changed status of staff id=%d to %s", id, status)
	return nil
}

// SetBookable включает или выключает доступность сотрудника для записи
func (s *Service) SetBookable(ctx context.Context, id int64, isBookable bool) error {
	s.logger.Info("SetBookable: setting is_bookable=%v for staff id=%d", isBookable, id)

	if err := s.staffRepo.SetBookable(ctx, id, isBookable); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("SetBookable: staff member id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("SetBookable: repository error for staff id=%d: %v", id, err)
		return fmt.Errorf("%w: SetBookable - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет сотрудника вместе с расписаниями, отпусками и назначениями
// (каскад на уровне БД)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting staff member id=%d", id)

	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Delete: staff member id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("Delete: repository error for staff id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted staff member id=%d", id)
	return nil
}

// Stats возвращает агрегированную статистику по сотрудникам
func (s *Service) Stats(ctx context.Context) (*models.StaffStatsResponse, error) {
	stats := &domain.StaffStats{}

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		byStatus, err := s.staffRepo.CountByStatus(ctx)
		if err != nil {
			return fmt.Errorf("%w: Stats - count by status: %v", ErrInternal, err)
		}

		stats.ActiveStaff = byStatus[domain.StaffStatusActive]
		stats.InactiveStaff = byStatus[domain.StaffStatusInactive]
		stats.OnLeave = byStatus[domain.StaffStatusOnLeave]
		stats.Terminated = byStatus[domain.StaffStatusTerminated]
		stats.TotalStaff = stats.ActiveStaff + stats.InactiveStaff + stats.OnLeave + stats.Terminated

		bookable, err := s.staffRepo.CountBookable(ctx)
		if err != nil {
			return fmt.Errorf("%w: Stats - count bookable: %v", ErrInternal, err)
		}
		stats.BookableStaff = bookable

		pending, err := s.timeOffRepo.CountByStatus(ctx, domain.TimeOffStatusPending)
		if err != nil {
			return fmt.Errorf("%w: Stats - count pending time off: %v", ErrInternal, err)
		}
		stats.PendingTimeOff = pending

		return nil
	})
	if err != nil {
		s.logger.Error("Stats: failed to collect stats: %v", err)
		return nil, err
	}

	return models.FromDomainStats(stats), nil
}

// Вспомогательные методы

func (s *Service) buildStaffMember(req *models.CreateStaffRequest) (*domain.StaffMember, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%w: first name and last name are required", ErrInvalidInput)
	}
	if len(req.FirstName) > domain.MaxNameLength || len(req.LastName) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name too long", ErrInvalidInput)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	member := &domain.StaffMember{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		EmployeeID:           req.EmployeeID,
		Role:                 req.Role,
		Status:               domain.StaffStatusActive,
		Bio:                  req.Bio,
		Specialties:          req.Specialties,
		IsBookable:           true,
		CalendarColor:        req.CalendarColor,
		BookingBufferMinutes: req.BookingBufferMinutes,
		HourlyRate:           req.HourlyRate,
		CommissionRate:       req.CommissionRate,
		DisplayOrder:         req.DisplayOrder,
		Notes:                req.Notes,
	}

	if req.IsBookable != nil {
		member.IsBookable = *req.IsBookable
	}

	if req.HireDate != nil {
		hireDate, err := time.Parse(domain.DateFormat, *req.HireDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hire date", ErrInvalidInput)
		}
		member.HireDate = &hireDate
	}

	return member, nil
}

// createDefaultSchedule создает для нового сотрудника расписание по умолчанию:
// Пн-Пт рабочие дни с часами из конфигурации, Сб-Вс выходные
func (s *Service) createDefaultSchedule(ctx context.Context, staffID int64) error {
	schedule := &domain.Schedule{
		StaffID:   staffID,
		Name:      "Default Schedule",
		IsDefault: true,
		IsActive:  true,
	}

	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		return fmt.Errorf("%w: createDefaultSchedule - create schedule: %v", ErrInternal, err)
	}

	// Перерыв ставим через 4 часа после начала рабочего дня
	breakStart, err := s.defaults.DefaultWorkStart.AddMinutes(4 * 60)
	if err != nil {
		return fmt.Errorf("%w: createDefaultSchedule - compute break start: %v", ErrInternal, err)
	}
	breakEnd, err := breakStart.AddMinutes(s.defaults.DefaultBreakMinutes)
	if err != nil {
		return fmt.Errorf("%w: createDefaultSchedule - compute break end: %v", ErrInternal, err)
	}

	hours := make([]*domain.WorkingHours, 0, 7)
	for dayOfWeek := 0; dayOfWeek < 7; dayOfWeek++ {
		wh := &domain.WorkingHours{
			ScheduleID: created.ID,
			DayOfWeek:  dayOfWeek,
			StartTime:  s.defaults.DefaultWorkStart,
			EndTime:    s.defaults.DefaultWorkEnd,
			IsWorking:  dayOfWeek < 5, // Сб и Вс выходные
		}
		if wh.IsWorking && s.defaults.DefaultBreakMinutes > 0 {
			bs, be := breakStart, breakEnd
			wh.BreakStart = &bs
			wh.BreakEnd = &be
		}
		hours = append(hours, wh)
	}

	if err := s.scheduleRepo.ReplaceWorkingHours(ctx, created.ID, hours); err != nil {
		return fmt.Errorf("%w: createDefaultSchedule - save working hours: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) applyPatch(member *domain.StaffMember, req *models.UpdateStaffRequest) error {
	if req.FirstName != nil {
		if *req.FirstName == "" || len(*req.FirstName) > domain.MaxNameLength {
			return fmt.Errorf("%w: invalid first name", ErrInvalidInput)
		}
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if *req.LastName == "" || len(*req.LastName) > domain.MaxNameLength {
			return fmt.Errorf("%w: invalid last name", ErrInvalidInput)
		}
		member.LastName = *req.LastName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse(domain.DateFormat, *req.HireDate)
		if err != nil {
			return fmt.Errorf("%w: invalid hire date", ErrInvalidInput)
		}
		member.HireDate = &hireDate
	}
	if req.Bio != nil {
		member.Bio = *req.Bio
	}
	if req.Specialties != nil {
		member.Specialties = *req.Specialties
	}
	if req.CalendarColor != nil {
		member.CalendarColor = *req.CalendarColor
	}
	if req.BookingBufferMinutes != nil {
		if *req.BookingBufferMinutes < 0 {
			return fmt.Errorf("%w: booking buffer cannot be negative", ErrInvalidInput)
		}
		member.BookingBufferMinutes = *req.BookingBufferMinutes
	}
	if req.HourlyRate != nil {
		member.HourlyRate = *req.HourlyRate
	}
	if req.CommissionRate != nil {
		member.CommissionRate = *req.CommissionRate
	}
	if req.DisplayOrder != nil {
		member.DisplayOrder = *req.DisplayOrder
	}
	if req.Notes != nil {
		if len(*req.Notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: notes too long", ErrInvalidInput)
		}
		member.Notes = *req.Notes
	}
	return nil
}
