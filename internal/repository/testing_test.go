package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Shared cache keeps the in-memory database visible to every pooled
	// connection; the per-test name keeps tests isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.School{},
		&models.Staff{},
		&models.Class{},
		&models.Subject{},
		&models.Student{},
		&models.Activity{},
		&models.Evaluation{},
		&models.BimonthlyGrade{},
		&models.Observation{},
		&models.Condition{},
		&models.Insight{},
		&models.AuditLog{},
	))
	return db
}

func seedSchool(t *testing.T, db *gorm.DB, name string) models.School {
	t.Helper()
	school := models.School{Name: name}
	require.NoError(t, db.Create(&school).Error)
	return school
}

func seedClass(t *testing.T, db *gorm.DB, schoolID uint, name string) models.Class {
	t.Helper()
	class := models.Class{Name: name, SchoolID: schoolID}
	require.NoError(t, db.Create(&class).Error)
	return class
}

func seedSubject(t *testing.T, db *gorm.DB, schoolID uint, name string) models.Subject {
	t.Helper()
	subject := models.Subject{Name: name, SchoolID: schoolID}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

func seedTeacher(t *testing.T, db *gorm.DB, schoolID uint, registration string) models.Staff {
	t.Helper()
	staff := models.Staff{
		Name:         "Teacher " + registration,
		Email:        registration + "@escola.test",
		Registration: registration,
		PasswordHash: "x",
		Role:         "teacher",
		SchoolID:     &schoolID,
	}
	require.NoError(t, db.Create(&staff).Error)
	return staff
}

func seedStudent(t *testing.T, db *gorm.DB, schoolID, classID uint, registration string) models.Student {
	t.Helper()
	student := models.Student{
		Name:         "Student " + registration,
		Registration: registration,
		Age:          12,
		ClassID:      classID,
		SchoolID:     schoolID,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedActivity(t *testing.T, db *gorm.DB, schoolID, subjectID, teacherID uint, maxScore float64) models.Activity {
	t.Helper()
	activity := models.Activity{
		Kind:      "test",
		MaxScore:  maxScore,
		SubjectID: subjectID,
		TeacherID: teacherID,
		SchoolID:  schoolID,
	}
	require.NoError(t, db.Create(&activity).Error)
	return activity
}
