// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// System updates a world once per frame.
type System func(w donburi.World)

// Schedule runs systems in insertion order.
type Schedule struct {
	systems []System
}

// NewSchedule returns a schedule holding systems.
func NewSchedule(systems ...System) *Schedule {
	return &Schedule{systems: systems}
}

// Add appends systems to the schedule.
func (s *Schedule) Add(systems ...System) *Schedule {
	s.systems = append(s.systems, systems...)
	return s
}

// Len returns the number of systems.
func (s *Schedule) Len() int { return len(s.systems) }

// Run delivers queued events, then runs every system.
func (s *Schedule) Run(w donburi.World) {
	events.ProcessAllEvents(w)
	for _, sys := range s.systems {
		sys(w)
	}
}
