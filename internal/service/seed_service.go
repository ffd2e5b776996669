package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

// Seeder populates the collections with demo fixtures. Seeding is
// idempotent: a non-empty students collection makes the run a no-op.
type Seeder struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewSeeder constructs a Seeder.
func NewSeeder(s store.Store, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{store: s, logger: logger, now: time.Now}
}

// Seed writes the fixture collections unless students already exist.
// It reports whether anything was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	existing, err := s.store.ReadAll(store.CollectionStudents)
	if err != nil {
		return false, storageFailure(err)
	}
	if len(existing) > 0 {
		s.logger.Info("students collection not empty, skipping seed",
			zap.Int("students", len(existing)))
		return false, nil
	}

	studentHash, err := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	teacherHash, err := bcrypt.GenerateFromPassword([]byte("teacher123"), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	students := seedStudents(string(studentHash))
	teachers := seedTeachers(string(teacherHash))
	attendance := seedAttendance(students, s.now())
	marks := seedMarks(students)
	payments := seedPayments()

	if err := writeSeed(s.store, store.CollectionStudents, students); err != nil {
		return false, err
	}
	if err := writeSeed(s.store, store.CollectionTeachers, teachers); err != nil {
		return false, err
	}
	if err := writeSeed(s.store, store.CollectionAttendance, attendance); err != nil {
		return false, err
	}
	if err := writeSeed(s.store, store.CollectionMarks, marks); err != nil {
		return false, err
	}
	if err := writeSeed(s.store, store.CollectionPayments, payments); err != nil {
		return false, err
	}

	s.logger.Info("seed data written",
		zap.Int("students", len(students)),
		zap.Int("teachers", len(teachers)),
		zap.Int("attendance", len(attendance)),
		zap.Int("marks", len(marks)),
		zap.Int("payments", len(payments)))
	return true, nil
}

func writeSeed[T any](s store.Store, collection string, items []T) error {
	records := make([]store.Record, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return storageFailure(err)
		}
		var rec store.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return storageFailure(err)
		}
		records = append(records, rec)
	}
	if err := s.WriteAll(collection, records); err != nil {
		return storageFailure(err)
	}
	return nil
}

func storageFailure(err error) error {
	return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
}

func seedStudents(passwordHash string) []models.Student {
	base := []models.Student{
		{StudentID: "S1001", Name: "Rahul Sharma", DOB: "2005-03-15", Year: "2", Branch: "CSE", Section: "A", Club: "Robotics", Hostel: "H1", ParentPhone: "9876543210", FeeTotal: 50000, FeePaid: 20000},
		{StudentID: "S1002", Name: "Priya Patel", DOB: "2005-07-22", Year: "2", Branch: "CSE", Section: "A", Club: "Music", Hostel: "H2", ParentPhone: "9876543211", FeeTotal: 50000, FeePaid: 50000},
		{StudentID: "S1003", Name: "Amit Kumar", DOB: "2005-11-08", Year: "2", Branch: "ECE", Section: "B", Club: "Sports", Hostel: "H1", ParentPhone: "9876543212", FeeTotal: 50000, FeePaid: 15000},
		{StudentID: "S1004", Name: "Sneha Reddy", DOB: "2006-01-20", Year: "1", Branch: "CSE", Section: "A", Club: "Drama", Hostel: "H2", ParentPhone: "9876543213", FeeTotal: 50000, FeePaid: 25000},
		{StudentID: "S1005", Name: "Vikram Singh", DOB: "2004-09-12", Year: "3", Branch: "MECH", Section: "A", Club: "Robotics", Hostel: "H3", ParentPhone: "9876543214", FeeTotal: 50000, FeePaid: 50000},
	}
	for i := range base {
		base[i].Password = passwordHash
		base[i].FeeStatus = models.FeeStatusFor(base[i].FeePaid, base[i].FeeTotal)
	}
	return base
}

func seedTeachers(passwordHash string) []models.Teacher {
	return []models.Teacher{
		{TeacherID: "T101", Name: "Dr. Rajesh Kumar", Subject: "Mathematics", Password: passwordHash},
		{TeacherID: "T102", Name: "Prof. Anita Desai", Subject: "Physics", Password: passwordHash},
		{TeacherID: "T103", Name: "Dr. Suresh Nair", Subject: "Computer Science", Password: passwordHash},
	}
}

// seedAttendance covers the last 31 days per student. Roughly one day in
// five is absent, spread deterministically so reruns produce the same data.
func seedAttendance(students []models.Student, today time.Time) []models.AttendanceRecord {
	records := make([]models.AttendanceRecord, 0, len(students)*31)
	for si, student := range students {
		for offset := 30; offset >= 0; offset-- {
			status := models.AttendanceStatusPresent
			if (offset+si)%5 == 0 {
				status = models.AttendanceStatusAbsent
			}
			records = append(records, models.AttendanceRecord{
				Date:      today.AddDate(0, 0, -offset).Format("2006-01-02"),
				StudentID: student.StudentID,
				Status:    status,
			})
		}
	}
	return records
}

func seedMarks(students []models.Student) []models.MarkRecord {
	subjectsByBranch := map[string][]string{
		"CSE":  {"Mathematics", "Physics", "Computer Science", "Data Structures"},
		"ECE":  {"Mathematics", "Physics", "Electronics", "Signals"},
		"MECH": {"Mathematics", "Physics", "Mechanics", "Thermodynamics"},
	}
	terms := []string{"Mid1", "Mid2", "Final"}

	records := make([]models.MarkRecord, 0, len(students)*len(terms)*4)
	n := 0
	for _, student := range students {
		subjects, ok := subjectsByBranch[student.Branch]
		if !ok {
			subjects = subjectsByBranch["CSE"]
		}
		for _, subject := range subjects {
			for _, term := range terms {
				records = append(records, models.MarkRecord{
					StudentID: student.StudentID,
					Subject:   subject,
					Term:      term,
					Marks:     float64(60 + (n*7)%36),
				})
				n++
			}
		}
	}
	return records
}

func seedPayments() []models.PaymentRecord {
	payments := []models.PaymentRecord{
		{StudentID: "S1001", ParentPhone: "9876543210", Amount: 10000, Date: "2025-08-15", Mode: "online", Note: "First installment"},
		{StudentID: "S1001", ParentPhone: "9876543210", Amount: 10000, Date: "2025-10-20", Mode: "online", Note: "Second installment"},
		{StudentID: "S1002", ParentPhone: "9876543211", Amount: 50000, Date: "2025-08-10", Mode: "online", Note: "Full payment"},
		{StudentID: "S1003", ParentPhone: "9876543212", Amount: 15000, Date: "2025-09-05", Mode: "cash", Note: "Partial payment"},
		{StudentID: "S1004", ParentPhone: "9876543213", Amount: 25000, Date: "2025-08-20", Mode: "online", Note: "Half payment"},
		{StudentID: "S1005", ParentPhone: "9876543214", Amount: 50000, Date: "2025-08-12", Mode: "cheque", Note: "Full payment"},
	}
	for i := range payments {
		payments[i].PaymentID = fmt.Sprintf("P%04d", i+1)
	}
	return payments
}
