package booking

import (
	"github.com/jhcsc-org/jhcsc-venue/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
