package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/repository"
	"github.com/floreser/school-portal/internal/service/timetable"
)

var ErrUnknownDay = errors.New("unknown day")

type ScheduleService interface {
	GetFull(ctx context.Context) ([]models.ScheduleEntry, error)
	DayView(ctx context.Context, day, teacherFilter string) (*models.DayViewResponse, error)
	TeacherWeeks(ctx context.Context) ([]models.TeacherWeekCard, error)
	StudentSchedule(ctx context.Context, fullName string) (*models.StudentScheduleResponse, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	logger       zerolog.Logger
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

func (s *scheduleService) GetFull(ctx context.Context) ([]models.ScheduleEntry, error) {
	entries, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return entries, nil
}

// DayView renders one day as slot rows with one column per teacher present
// that day, the way the interactive day table lays out. The optional
// teacher filter narrows both columns and cells.
func (s *scheduleService) DayView(ctx context.Context, day, teacherFilter string) (*models.DayViewResponse, error) {
	if !timetable.ValidDay(day) {
		return nil, ErrUnknownDay
	}

	entries, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	dayEntries := timetable.GroupByDay(entries)[day]
	dayEntries = timetable.FilterByTeacher(dayEntries, teacherFilter)

	teachers := timetable.TeachersPresent(dayEntries)
	bySlot := timetable.GroupByTimeSlot(dayEntries)

	slots := make([]models.DaySlot, 0, len(timetable.TimeSlots))
	for _, slot := range timetable.TimeSlots {
		cells := make([]models.DayCell, 0, len(teachers))
		for _, teacher := range teachers {
			cell := models.DayCell{
				Teacher: teacher,
				Color:   timetable.ColorFor(teacher).Token,
			}
			for i := range bySlot[slot] {
				if bySlot[slot][i].Teacher == teacher {
					cell.Entry = &bySlot[slot][i]
					break
				}
			}
			cells = append(cells, cell)
		}
		slots = append(slots, models.DaySlot{Slot: slot, Cells: cells})
	}

	return &models.DayViewResponse{
		Day:      day,
		Teachers: teachers,
		Slots:    slots,
	}, nil
}

// TeacherWeeks builds one weekly card per teacher carrying more than one
// class, grouped by day.
func (s *scheduleService) TeacherWeeks(ctx context.Context) ([]models.TeacherWeekCard, error) {
	entries, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	var cards []models.TeacherWeekCard
	for _, teacher := range timetable.TeachersPresent(entries) {
		week := timetable.TeacherWeek(entries, teacher)
		if len(week) <= 1 {
			continue
		}

		byDay := timetable.GroupByDay(week)
		var days []models.TeacherDayClasses
		for _, day := range timetable.Days {
			if len(byDay[day]) == 0 {
				continue
			}
			days = append(days, models.TeacherDayClasses{Day: day, Entries: byDay[day]})
		}

		cards = append(cards, models.TeacherWeekCard{
			Teacher: teacher,
			Color:   timetable.ColorFor(teacher).Token,
			Days:    days,
		})
	}

	return cards, nil
}

// StudentSchedule resolves a student's classes by name matching against the
// free-text rosters and lays them out as a personal day-by-slot grid.
func (s *scheduleService) StudentSchedule(ctx context.Context, fullName string) (*models.StudentScheduleResponse, error) {
	entries, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	matched := timetable.MatchStudent(fullName, entries)

	return &models.StudentScheduleResponse{
		Student: fullName,
		Count:   len(matched),
		Entries: matched,
		Grid:    timetable.BuildGrid(matched),
	}, nil
}
