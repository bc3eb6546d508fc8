package workers

import (
	"fmt"
	"log/slog"
)

// Manager запускает фоновые задачи и останавливает их при завершении
type Manager struct {
	workers []Worker
	started []Worker
	logger  *slog.Logger
}

func NewManager(logger *slog.Logger, workers ...Worker) *Manager {
	return &Manager{
		workers: workers,
		logger:  logger,
	}
}

// Start при ошибке останавливает уже запущенные задачи
func (m *Manager) Start() error {
	m.logger.Info("Запуск фоновых задач", "worker_count", len(m.workers))

	for _, worker := range m.workers {
		if err := worker.Start(); err != nil {
			m.Stop()
			return fmt.Errorf("start worker %s: %w", worker.Name(), err)
		}
		m.started = append(m.started, worker)
		m.logger.Info("Фоновая задача запущена", "name", worker.Name())
	}

	return nil
}

// Stop останавливает задачи в обратном порядке
func (m *Manager) Stop() {
	for i := len(m.started) - 1; i >= 0; i-- {
		m.logger.Info("Остановка фоновой задачи", "name", m.started[i].Name())
		m.started[i].Stop()
	}
	m.started = nil
}
