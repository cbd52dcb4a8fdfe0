package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// Refresher es lo que el actualizador necesita del servicio de movers
type Refresher interface {
	Refresh(ctx context.Context) bool
}

// MoversUpdater es un servicio que refresca los snapshots periódicamente
type MoversUpdater struct {
	interval    time.Duration
	service     Refresher
	isRunning   bool
	cancel      context.CancelFunc
	done        chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
}

// NewMoversUpdater crea un nuevo actualizador de snapshots
func NewMoversUpdater(service Refresher, interval time.Duration) *MoversUpdater {
	return &MoversUpdater{
		interval: interval,
		service:  service,
	}
}

// Start inicia el actualizador en segundo plano
func (p *MoversUpdater) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isRunning || p.interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.isRunning = true
	p.cancel = cancel
	p.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// Actualizar inmediatamente al iniciar
		p.update(ctx)

		for {
			select {
			case <-ticker.C:
				p.update(ctx)
			case <-ctx.Done():
				return
			}
		}
	}(p.done)

	log.Printf("Actualizador de movers iniciado con intervalo de %v", p.interval)
}

// Stop detiene el actualizador y espera a que termine el refresh en curso
func (p *MoversUpdater) Stop() {
	p.mutex.Lock()
	if !p.isRunning {
		p.mutex.Unlock()
		return
	}
	p.isRunning = false
	p.cancel()
	done := p.done
	p.mutex.Unlock()

	<-done
	log.Printf("Actualizador de movers detenido")
}

func (p *MoversUpdater) update(ctx context.Context) {
	if !p.service.Refresh(ctx) {
		return
	}

	p.mutex.Lock()
	p.lastUpdated = time.Now()
	p.mutex.Unlock()
}

// IsRunning indica si el actualizador está activo
func (p *MoversUpdater) IsRunning() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.isRunning
}

// GetLastUpdated obtiene la última vez que el actualizador refrescó los snapshots
func (p *MoversUpdater) GetLastUpdated() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.lastUpdated
}
