// Package storage defines the persistence contract shared by the sqlite and
// postgres backends (§5 "no shared mutable state": each Provider instance
// owns its own connection).
package storage

import "github.com/weekplan/weekplan/internal/models"

// Provider is implemented by every storage backend. A solve never persists
// its own output (§6 "persisted state: none"); only tasks, commitments, and
// settings survive between runs.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetAllTasksIncludingDeleted() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Commitments
	AddCommitment(models.Commitment) error
	GetCommitment(id string) (models.Commitment, error)
	GetAllCommitments() ([]models.Commitment, error)
	DeleteCommitment(id string) error

	// Utils
	GetConfigPath() string
}
