package pending

// Reader - чтение ожиданий без изменения
type Reader interface {
	Get(key Key) (any, bool)
	Has(key Key) bool
	// Scan возвращает записи вида kind в порядке записи. chatID == 0 - любые владельцы.
	Scan(kind Kind, chatID int64) []Entry
}

// Store - хранилище ожиданий. Последняя запись по ключу выигрывает, срока жизни нет.
type Store interface {
	Reader
	Put(key Key, value any)
	Delete(key Key)
	// Take атомарно читает и удаляет запись
	Take(key Key) (any, bool)
	// DeleteIf удаляет запись, если match вернул true для её значения
	DeleteIf(key Key, match func(value any) bool) bool
	// FindFirst ищет первую по порядку записи запись вида kind у владельца chatID
	FindFirst(kind Kind, chatID int64) (Entry, bool)
	Len() int
}
