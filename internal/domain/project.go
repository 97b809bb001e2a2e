package domain

import (
	"fmt"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "Draft"
	ProjectStatusApproved  ProjectStatus = "Approved"
	ProjectStatusExecuting ProjectStatus = "Executing"
	ProjectStatusClosed    ProjectStatus = "Closed"
)

type Organization struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	VATNumber string    `json:"vat_number"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Project struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	OrganizationID string        `json:"organization_id" gorm:"index"`
	Name           string        `json:"name"`
	Status         ProjectStatus `json:"status"`
	StartDate      time.Time     `json:"start_date"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// SubProject groups the stations planned for one municipality.
type SubProject struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ProjectID    string    `json:"project_id" gorm:"index"`
	Municipality string    `json:"municipality"`
	Province     string    `json:"province"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScopeKind identifies which entity an analysis is anchored to.
type ScopeKind string

const (
	ScopeGlobal     ScopeKind = "global"
	ScopeProject    ScopeKind = "project"
	ScopeSubProject ScopeKind = "sub_project"
	ScopeStation    ScopeKind = "station"
)

// AnalysisScope is the target of an analysis run: the whole estate, one
// project, one sub-project, or one station. EntityID is empty only for the
// global scope.
type AnalysisScope struct {
	Kind     ScopeKind `json:"kind"`
	EntityID string    `json:"entity_id,omitempty"`
}

func GlobalScope() AnalysisScope {
	return AnalysisScope{Kind: ScopeGlobal}
}

func ProjectScope(projectID string) AnalysisScope {
	return AnalysisScope{Kind: ScopeProject, EntityID: projectID}
}

func SubProjectScope(subProjectID string) AnalysisScope {
	return AnalysisScope{Kind: ScopeSubProject, EntityID: subProjectID}
}

func StationScope(stationID string) AnalysisScope {
	return AnalysisScope{Kind: ScopeStation, EntityID: stationID}
}

func (s AnalysisScope) String() string {
	if s.Kind == ScopeGlobal {
		return string(ScopeGlobal)
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.EntityID)
}
