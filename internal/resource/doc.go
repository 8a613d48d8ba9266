// Package resource provides accounting for engine-owned scratch memory.
//
// The controller is advisory: buffers are allocated by the scratch package,
// which asks the controller for budget before growing and returns it on
// reset. A nil *Controller is valid and disables all limits.
package resource
