package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ======================================================
// CLIENTE DEL BACKEND DEL TALLER
// ======================================================

// Client habla con el backend administrativo del taller. El backend es
// la autoridad: cualquier rechazo suyo (p. ej. conflicto de horario en
// el create) pisa lo que esta capa haya calculado localmente.
type Client struct {
	hc      *http.Client
	baseURL string
	token   string
}

func New(baseURL, token string) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// ======================================================
// TIPOS DE INTERCAMBIO
// ======================================================

// CalendarEntry es un bloque ocupado tal como lo entrega el backend:
// timestamps ISO-8601 en UTC.
type CalendarEntry struct {
	ID              uint   `json:"id"`
	FechaHoraInicio string `json:"fecha_hora_inicio"`
	FechaHoraFin    string `json:"fecha_hora_fin"`
	Estado          string `json:"estado"`
}

type Cita struct {
	ID              uint   `json:"id"`
	ClienteID       uint   `json:"cliente"`
	EmpleadoID      uint   `json:"empleado"`
	FechaHoraInicio string `json:"fecha_hora_inicio"`
	FechaHoraFin    string `json:"fecha_hora_fin"`
	Estado          string `json:"estado"`
	Motivo          string `json:"motivo"`
}

type CreateCitaRequest struct {
	ClienteID       uint   `json:"cliente"`
	EmpleadoID      uint   `json:"empleado"`
	FechaHoraInicio string `json:"fecha_hora_inicio"`
	FechaHoraFin    string `json:"fecha_hora_fin"`
	Motivo          string `json:"motivo,omitempty"`
}

type ReprogramarCitaRequest struct {
	FechaHoraInicio string `json:"fecha_hora_inicio"`
	FechaHoraFin    string `json:"fecha_hora_fin"`
}

// ======================================================
// ERRORES
// ======================================================

// APIError conserva el estado y el detalle que mandó el backend para
// poder reenviarlos tal cual a la pantalla.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream rejected request: %s (status=%d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("upstream rejected request (status=%d)", e.StatusCode)
}

// IsRejection distingue un rechazo de negocio del backend (4xx) de una
// falla de red o del propio backend (5xx, timeout).
func (e *APIError) IsRejection() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ======================================================
// OPERACIONES
// ======================================================

// EmployeeCalendar trae TODOS los intervalos ocupados activos del
// empleado; el backend no filtra por día, eso es responsabilidad del
// que llama.
func (c *Client) EmployeeCalendar(ctx context.Context, employeeID string) ([]CalendarEntry, error) {
	path := fmt.Sprintf("/employee/%s/calendar/", url.PathEscape(employeeID))

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var entries []CalendarEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode employee calendar: %w", err)
	}
	return entries, nil
}

func (c *Client) CreateCita(ctx context.Context, req CreateCitaRequest) (*Cita, error) {
	body, err := c.do(ctx, http.MethodPost, "/citas-cliente/", req)
	if err != nil {
		return nil, err
	}

	var cita Cita
	if err := json.Unmarshal(body, &cita); err != nil {
		return nil, fmt.Errorf("decode cita: %w", err)
	}
	return &cita, nil
}

func (c *Client) ReprogramarCita(ctx context.Context, citaID uint, req ReprogramarCitaRequest) (*Cita, error) {
	path := fmt.Sprintf("/citas-cliente/%d/reprogramar/", citaID)

	body, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var cita Cita
	if err := json.Unmarshal(body, &cita); err != nil {
		return nil, fmt.Errorf("decode cita: %w", err)
	}
	return &cita, nil
}

// ======================================================
// INTERNO
// ======================================================

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(body),
		}
	}
	return body, nil
}

// extractDetail saca el mensaje de error del cuerpo sin asumir un
// formato único: el backend a veces manda "detail", a veces "error" o
// "message".
func extractDetail(body []byte) string {
	var r struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &r)

	switch {
	case r.Detail != "":
		return r.Detail
	case r.Error != "":
		return r.Error
	case r.Message != "":
		return r.Message
	}
	return ""
}
