package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// PathInt64 положительный int64 из переменной пути
func PathInt64(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// QueryUint64 неотрицательное число из query, пустое значение дает 0
func QueryUint64(r *http.Request, name string) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
