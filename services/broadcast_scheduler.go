package services

import (
	"log"
	"time"
)

// BroadcastScheduler triggers a broadcast on a fixed interval, for
// deployments without an external cron hitting /admin/broadcast.
type BroadcastScheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	stop       chan struct{}
}

func NewBroadcastScheduler(dispatcher *Dispatcher, interval time.Duration) *BroadcastScheduler {
	return &BroadcastScheduler{
		dispatcher: dispatcher,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start runs the ticker loop in a background goroutine.
func (s *BroadcastScheduler) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		log.Printf("BroadcastScheduler: broadcasting every %v", s.interval)
		for {
			select {
			case <-ticker.C:
				if _, err := s.dispatcher.Broadcast(); err != nil {
					log.Printf("BroadcastScheduler: broadcast failed: %s", err.Error())
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *BroadcastScheduler) Stop() {
	close(s.stop)
}
