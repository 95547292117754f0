package events

import "go.uber.org/zap"

// Eventos de diagnóstico de la agenda. No bloquean el flujo que los
// emite: las fallas tragadas (fail-open) tienen que quedar en los logs
// aunque la pantalla siga como si nada.

type Event struct {
	Tipo       string
	EmpleadoID string
	Dia        string
	Detalle    map[string]any
}

const (
	TipoCargaFallida       = "carga_calendario_fallida"
	TipoRegistroDescartado = "registro_invalido_descartado"
	TipoRespuestaVieja     = "respuesta_vieja_descartada"
	TipoConflictoDetectado = "conflicto_detectado"
	TipoRechazoBackend     = "rechazo_backend"
)

type Dispatcher struct {
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		queue: make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

// Dispatch nunca bloquea al que emite: con la cola llena el evento se
// descarta.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
	}
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		fields := []zap.Field{
			zap.String("tipo", ev.Tipo),
			zap.String("empleado_id", ev.EmpleadoID),
			zap.String("dia", ev.Dia),
		}
		if len(ev.Detalle) > 0 {
			fields = append(fields, zap.Any("detalle", ev.Detalle))
		}
		d.log.Info("evento_agenda", fields...)
	}
}
