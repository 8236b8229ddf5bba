package router

import (
	"net/http"

	"auth-system/pkg/apierror"
)

var (
	errNotFound         = apierror.New("NOT_FOUND", "route not found", "", http.StatusNotFound)
	errMethodNotAllowed = apierror.New("METHOD_NOT_ALLOWED", "method not allowed", "", http.StatusMethodNotAllowed)
)
