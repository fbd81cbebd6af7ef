package snake

// placeFood puts normal food on a random cell free of the snake and bonus food.
// Food stays absent when no such cell exists.
func (s *Simulation) placeFood() {
	p, ok := s.randomFreeCell(s.bonusPtr())
	s.food, s.hasFood = p, ok
}

// spawnBonus places bonus food and arms its expiry. An existing bonus is replaced.
func (s *Simulation) spawnBonus() {
	s.clearBonus()

	p, ok := s.randomFreeCell(s.foodPtr())
	if !ok {
		return
	}

	s.bonus = p
	s.hasBonus = true
	s.bonusGen++
	gen := s.bonusGen
	s.bonusTimer = s.sched.ScheduleAfter(s.cfg.BonusLifetime, func() {
		s.expireBonus(gen)
	})

	s.emit(BonusSpawnedEvent{At: p, Lifetime: s.cfg.BonusLifetime})
}

// expireBonus clears the bonus armed under gen if it is still on the board.
func (s *Simulation) expireBonus(gen uint64) {
	if !s.hasBonus || gen != s.bonusGen {
		return
	}
	at := s.bonus
	s.hasBonus = false
	s.bonusTimer = 0
	s.emit(BonusExpiredEvent{At: at})
}

// clearBonus removes the bonus and cancels its pending expiry.
func (s *Simulation) clearBonus() {
	if s.bonusTimer != 0 {
		s.sched.Cancel(s.bonusTimer)
		s.bonusTimer = 0
	}
	s.hasBonus = false
}

// randomFreeCell draws uniform cells until one is free of the snake and avoid.
func (s *Simulation) randomFreeCell(avoid *Position) (Position, bool) {
	occupied := len(s.snake)
	if avoid != nil {
		occupied++
	}
	if occupied >= s.grid.Cells() {
		return Position{}, false
	}

	for {
		p := Position{X: s.rng.Intn(s.grid.Columns), Y: s.rng.Intn(s.grid.Rows)}
		if s.occupies(p) || (avoid != nil && *avoid == p) {
			continue
		}
		return p, true
	}
}

func (s *Simulation) foodPtr() *Position {
	if !s.hasFood {
		return nil
	}
	p := s.food
	return &p
}

func (s *Simulation) bonusPtr() *Position {
	if !s.hasBonus {
		return nil
	}
	p := s.bonus
	return &p
}
