// Package app holds the process-wide facade instance, set once by main and
// shared by the middleware and handlers.
package app

import "github.com/jackut-dev/jackut/internal/facade"

var Jackut *facade.Facade
