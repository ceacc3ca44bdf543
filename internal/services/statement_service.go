package services

import (
	"errors"

	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// StatementService handles descargos: employee-authored responses
// attached to individual incident records. Admins may act on any
// record; employees only on their own.
type StatementService struct {
	db *gorm.DB
}

// NewStatementService creates a new statement service
func NewStatementService(db *gorm.DB) *StatementService {
	return &StatementService{db: db}
}

// CreateStatement attaches a statement to a record. The author is the
// caller's employee profile; pure user accounts store a null author,
// which only admins can do since employees without a profile cannot
// own records either.
func (s *StatementService) CreateStatement(recordID uint, content, attachmentPath string, actorUserID uint, isAdmin bool) (*database.Statement, error) {
	var record database.IncidentRecord
	err := s.db.First(&record, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	author, err := EmployeeForUser(s.db, actorUserID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if author == nil {
			return nil, ErrNoEmployeeProfile
		}
		if record.EmployeeID != author.ID {
			return nil, ErrNotRecordOwner
		}
	}

	statement := database.Statement{
		RecordID:       recordID,
		Content:        content,
		AttachmentPath: attachmentPath,
		Active:         true,
	}
	if author != nil {
		statement.AuthorID = &author.ID
	}

	if err := s.db.Create(&statement).Error; err != nil {
		return nil, err
	}

	if author != nil {
		statement.Author = author
	}
	return &statement, nil
}

// ListStatements returns the active statements of one record, oldest
// first. Employees can only list records that belong to them.
func (s *StatementService) ListStatements(recordID uint, actorUserID uint, isAdmin bool) ([]database.Statement, error) {
	var record database.IncidentRecord
	err := s.db.First(&record, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		author, err := EmployeeForUser(s.db, actorUserID)
		if err != nil {
			return nil, err
		}
		if author == nil || record.EmployeeID != author.ID {
			return nil, ErrRecordNotFound
		}
	}

	var statements []database.Statement
	err = s.db.Preload("Author").
		Where("record_id = ? AND active = ?", recordID, true).
		Order("created_at ASC, id ASC").
		Find(&statements).Error
	if err != nil {
		return nil, err
	}
	return statements, nil
}
