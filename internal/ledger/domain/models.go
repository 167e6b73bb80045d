// Package domain contains persistence models for the invoice ledger.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one appended invoice submission. UniqueID and Timestamp are
// server-assigned on append; the rest mirrors the submitted record.
type Entry struct {
	UniqueID    string `gorm:"primaryKey;column:unique_id"`
	InvoiceType string `gorm:"type:text;not null"`
	InvoiceNo   string `gorm:"type:text;not null"`
	InvoiceDate string `gorm:"type:text;not null"`
	DueDate     string `gorm:"type:text;not null"`
	Name        string `gorm:"type:text;not null"`
	StoreName   string `gorm:"type:text;not null"`
	Address     string `gorm:"type:text;not null"`
	Phone       string `gorm:"type:text;not null"`
	Email       string `gorm:"type:text;not null"`
	Service     string `gorm:"type:text;not null"`
	Cost        string `gorm:"type:text;not null"`
	GST         string `gorm:"type:text;not null;column:gst"`
	Total       string `gorm:"type:text;not null"`
	// Metadata keeps the raw submitted form for audit.
	Metadata  datatypes.JSONMap `gorm:"not null"`
	Timestamp time.Time         `gorm:"not null"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "invoices" }
