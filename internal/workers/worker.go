package workers

// Worker - фоновая задача, которую запускает и останавливает Manager
type Worker interface {
	Start() error
	Stop()
	Name() string
}
