package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"
)

// Repository is the catalog data boundary: an ordered sequence of records.
type Repository interface {
	All(ctx context.Context) ([]EventRecord, error)
}

type staticRepository struct {
	events []EventRecord
}

// NewStaticRepository serves a fixed, already validated record set.
func NewStaticRepository(events []EventRecord) Repository {
	return &staticRepository{events: slices.Clone(events)}
}

func (r *staticRepository) All(ctx context.Context) ([]EventRecord, error) {
	return slices.Clone(r.events), nil
}

// EventRow is the Postgres form of an EventRecord.
type EventRow struct {
	ID            string          `gorm:"primaryKey;size:64"`
	Position      int             `gorm:"not null;index"`
	TitleSR       string          `gorm:"not null;size:255"`
	TitleEN       string          `gorm:"not null;size:255"`
	DescriptionSR string          `gorm:"type:text"`
	DescriptionEN string          `gorm:"type:text"`
	Category      string          `gorm:"not null;size:64;index"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	Time          string          `gorm:"size:16"`
	LocationSR    string          `gorm:"not null;size:255"`
	LocationEN    string          `gorm:"not null;size:255"`
	VenueSR       string          `gorm:"not null;size:255"`
	VenueEN       string          `gorm:"not null;size:255"`
	Price         int             `gorm:"not null;check:price >= 0"`
	Image         string          `gorm:"size:500"`
	Featured      bool            `gorm:"default:false"`
	TicketTypes   []TicketTypeRow `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (EventRow) TableName() string { return "catalog_events" }

type TicketTypeRow struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"not null;size:64;index"`
	Position  int    `gorm:"not null"`
	NameSR    string `gorm:"not null;size:255"`
	NameEN    string `gorm:"not null;size:255"`
	Price     int    `gorm:"not null;check:price >= 0"`
	Available int    `gorm:"not null;check:available >= 0"`
}

func (TicketTypeRow) TableName() string { return "catalog_ticket_types" }

func toRow(e EventRecord, position int) EventRow {
	tickets := make([]TicketTypeRow, len(e.TicketTypes))
	for i, tt := range e.TicketTypes {
		tickets[i] = TicketTypeRow{
			EventID:   e.ID,
			Position:  i,
			NameSR:    tt.Name.SR,
			NameEN:    tt.Name.EN,
			Price:     tt.Price,
			Available: tt.Available,
		}
	}
	return EventRow{
		ID:            e.ID,
		Position:      position,
		TitleSR:       e.Title.SR,
		TitleEN:       e.Title.EN,
		DescriptionSR: e.Description.SR,
		DescriptionEN: e.Description.EN,
		Category:      string(e.Category),
		Date:          e.Date.Time,
		Time:          e.Time,
		LocationSR:    e.Location.SR,
		LocationEN:    e.Location.EN,
		VenueSR:       e.Venue.SR,
		VenueEN:       e.Venue.EN,
		Price:         e.Price,
		Image:         e.Image,
		Featured:      e.Featured,
		TicketTypes:   tickets,
	}
}

func fromRow(row EventRow) EventRecord {
	tickets := make([]TicketType, len(row.TicketTypes))
	for i, tt := range row.TicketTypes {
		tickets[i] = TicketType{
			Name:      Text{SR: tt.NameSR, EN: tt.NameEN},
			Price:     tt.Price,
			Available: tt.Available,
		}
	}
	y, m, d := row.Date.Date()
	return EventRecord{
		ID:          row.ID,
		Title:       Text{SR: row.TitleSR, EN: row.TitleEN},
		Description: Text{SR: row.DescriptionSR, EN: row.DescriptionEN},
		Category:    Category(row.Category),
		Date:        NewDate(y, m, d),
		Time:        row.Time,
		Location:    Text{SR: row.LocationSR, EN: row.LocationEN},
		Venue:       Text{SR: row.VenueSR, EN: row.VenueEN},
		Price:       row.Price,
		Image:       row.Image,
		Featured:    row.Featured,
		TicketTypes: tickets,
	}
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository reads the catalog from the catalog_events tables.
func NewPostgresRepository(db *gorm.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) All(ctx context.Context) ([]EventRecord, error) {
	var rows []EventRow
	err := r.db.WithContext(ctx).
		Preload("TicketTypes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	events := make([]EventRecord, len(rows))
	for i, row := range rows {
		events[i] = fromRow(row)
	}
	if err := ValidateEvents(events); err != nil {
		return nil, err
	}
	return events, nil
}

// Seed replaces the stored catalog with events, keeping their order.
func Seed(ctx context.Context, db *gorm.DB, events []EventRecord) error {
	if err := ValidateEvents(events); err != nil {
		return err
	}

	rows := make([]EventRow, len(events))
	for i, e := range events {
		rows[i] = toRow(e, i)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&TicketTypeRow{}).Error; err != nil {
			return fmt.Errorf("clear ticket types: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&EventRow{}).Error; err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
		return nil
	})
}
