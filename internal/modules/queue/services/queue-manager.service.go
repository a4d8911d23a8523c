package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"medtriage-core/internal/modules/queue/dto"
)

// Archiver archive les entrées sorties de la file active (historique).
// L'archivage se fait hors du chemin critique de la file : jamais bloquant.
type Archiver interface {
	Archive(ctx context.Context, record dto.HistoryRecord) error
}

// departmentQueue file d'un service : collection ordonnée d'entrées.
// Invariant de lecture : tri par score décroissant, égalité départagée par
// heure d'arrivée croissante. L'ordre de stockage n'est jamais muté : le tri
// est recalculé paresseusement à chaque lecture car le score dépend de l'horloge.
type departmentQueue struct {
	entries []*dto.PatientEntry
}

func (q *departmentQueue) find(patientID string) int {
	for i, entry := range q.entries {
		if entry.PatientID == patientID {
			return i
		}
	}
	return -1
}

func (q *departmentQueue) remove(index int) *dto.PatientEntry {
	entry := q.entries[index]
	q.entries = append(q.entries[:index], q.entries[index+1:]...)
	return entry
}

// QueueManager possède l'ensemble des files de service en mémoire.
// Toutes les opérations sont sérialisées par un unique mutex : les files
// comptent des dizaines d'entrées, pas des milliers, la granularité par
// service n'apporterait rien. Aucune opération ne bloque sur de l'I/O.
type QueueManager struct {
	mu         sync.Mutex
	queues     map[string]*departmentQueue
	calculator *PriorityCalculator
	archiver   Archiver
	now        func() time.Time
}

// NewQueueManager crée le gestionnaire de files, vide au démarrage.
// L'instance est unique et injectée par Fx : son cycle de vie est celui du
// processus, l'état est perdu au redémarrage (non-objectif assumé).
func NewQueueManager(calculator *PriorityCalculator, archiver Archiver) *QueueManager {
	return &QueueManager{
		queues:     make(map[string]*departmentQueue),
		calculator: calculator,
		archiver:   archiver,
		now:        time.Now,
	}
}

// AddPatient crée une entrée avec arrival_time = now et l'ajoute à la file du
// service demandé (créée si inconnue). Retourne la position et la taille de la
// file à l'instant de l'appel. Un échec ne laisse aucune entrée partielle.
func (qm *QueueManager) AddPatient(req *dto.AddPatientRequest) (*dto.AddPatientResult, error) {
	department := strings.TrimSpace(req.Department)
	if department == "" {
		return nil, NewValidationError("Le service de destination est requis", map[string]interface{}{
			"field": "department",
		})
	}

	riskLevel := dto.RiskLevel(req.RiskLevel)
	if !riskLevel.IsValid() {
		return nil, NewValidationError("Niveau de risque non reconnu", map[string]interface{}{
			"field":        "risk_level",
			"value":        req.RiskLevel,
			"valid_values": []string{string(dto.RiskLow), string(dto.RiskMedium), string(dto.RiskHigh)},
		})
	}

	patientID := strings.TrimSpace(req.PatientID)
	if patientID == "" {
		patientID = uuid.New().String()
	}

	qm.mu.Lock()
	defer qm.mu.Unlock()

	queue, exists := qm.queues[department]
	if !exists {
		queue = &departmentQueue{}
		qm.queues[department] = queue
	}

	// Vérification doublon et ajout sous le même verrou : ajout atomique
	if queue.find(patientID) >= 0 {
		return nil, NewDuplicateEntryError(patientID, department)
	}

	now := qm.now()
	entry := &dto.PatientEntry{
		PatientID:   patientID,
		RiskLevel:   riskLevel,
		Department:  department,
		Vitals:      req.Vitals,
		ArrivalMode: strings.TrimSpace(req.ArrivalMode),
		ArrivalTime: now,
		Status:      dto.StatusWaiting,
	}
	queue.entries = append(queue.entries, entry)

	view := qm.orderedViewLocked(queue, now)
	position := 0
	for i := range view {
		if view[i].PatientID == patientID {
			position = i + 1
			break
		}
	}

	return &dto.AddPatientResult{
		Patient:     qm.queuedView(entry, now),
		Position:    position,
		QueueLength: len(queue.entries),
	}, nil
}

// RemovePatient retire une entrée de la file active et l'archive.
// NotFound si le service ou le patient est inconnu (choix cohérent, jamais silencieux).
func (qm *QueueManager) RemovePatient(department, patientID string) (*dto.QueuedPatient, error) {
	return qm.removeAndArchive(department, patientID, "removed", nil)
}

// StartTreatment transition waiting -> in_treatment
func (qm *QueueManager) StartTreatment(department, patientID string) (*dto.QueuedPatient, error) {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	entry, err := qm.findEntryLocked(department, patientID)
	if err != nil {
		return nil, err
	}

	if entry.Status != dto.StatusWaiting {
		return nil, NewConflictError("Transition invalide: le patient n'est pas en attente", map[string]interface{}{
			"patient_id":     patientID,
			"current_status": string(entry.Status),
		})
	}

	entry.Status = dto.StatusInTreatment
	view := qm.queuedView(entry, qm.now())
	return &view, nil
}

// CompleteTreatment transition in_treatment -> completed.
// completed est terminal : l'entrée quitte la file active et part en historique.
func (qm *QueueManager) CompleteTreatment(department, patientID string) (*dto.QueuedPatient, error) {
	requireInTreatment := func(entry *dto.PatientEntry) error {
		if entry.Status != dto.StatusInTreatment {
			return NewConflictError("Transition invalide: le patient n'est pas en traitement", map[string]interface{}{
				"patient_id":     patientID,
				"current_status": string(entry.Status),
			})
		}
		return nil
	}
	return qm.removeAndArchive(department, patientID, "completed", requireInTreatment)
}

// OrderedView vue triée de la file d'un service, recalculée contre l'horloge
// courante. Idempotente, ne mute pas l'ordre stocké.
func (qm *QueueManager) OrderedView(department string) ([]dto.QueuedPatient, error) {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	queue, exists := qm.queues[department]
	if !exists {
		return nil, qm.unknownDepartmentError(department)
	}

	return qm.orderedViewLocked(queue, qm.now()), nil
}

// PositionOf position 1-based du patient dans la vue ordonnée de sa file
func (qm *QueueManager) PositionOf(department, patientID string) (int, error) {
	view, err := qm.OrderedView(department)
	if err != nil {
		return 0, err
	}

	for i := range view {
		if view[i].PatientID == patientID {
			return i + 1, nil
		}
	}

	return 0, NewNotFoundError("Patient introuvable dans la file", map[string]interface{}{
		"patient_id": patientID,
		"department": department,
	})
}

// AllQueues instantané de toutes les files (vues ordonnées + compteurs),
// calculé contre l'horloge au moment de l'appel, jamais un cache
func (qm *QueueManager) AllQueues() map[string]dto.DepartmentView {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	now := qm.now()
	snapshot := make(map[string]dto.DepartmentView, len(qm.queues))
	for department, queue := range qm.queues {
		view := qm.orderedViewLocked(queue, now)
		snapshot[department] = dto.DepartmentView{
			Patients: view,
			Count:    len(view),
		}
	}

	return snapshot
}

// Departments liste des services ayant une file (y compris vides)
func (qm *QueueManager) Departments() []string {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	names := make([]string, 0, len(qm.queues))
	for department := range qm.queues {
		names = append(names, department)
	}
	sort.Strings(names)
	return names
}

// SetClock remplace l'horloge (tests uniquement)
func (qm *QueueManager) SetClock(now func() time.Time) {
	qm.mu.Lock()
	defer qm.mu.Unlock()
	qm.now = now
}

// ── Helpers internes (appelés sous verrou) ──────────────────────────────────

func (qm *QueueManager) findEntryLocked(department, patientID string) (*dto.PatientEntry, error) {
	queue, exists := qm.queues[department]
	if !exists {
		return nil, qm.unknownDepartmentError(department)
	}

	index := queue.find(patientID)
	if index < 0 {
		return nil, NewNotFoundError("Patient introuvable dans la file", map[string]interface{}{
			"patient_id": patientID,
			"department": department,
		})
	}

	return queue.entries[index], nil
}

func (qm *QueueManager) removeAndArchive(department, patientID, finalStatus string, check func(*dto.PatientEntry) error) (*dto.QueuedPatient, error) {
	qm.mu.Lock()

	queue, exists := qm.queues[department]
	if !exists {
		qm.mu.Unlock()
		return nil, qm.unknownDepartmentError(department)
	}

	index := queue.find(patientID)
	if index < 0 {
		qm.mu.Unlock()
		return nil, NewNotFoundError("Patient introuvable dans la file", map[string]interface{}{
			"patient_id": patientID,
			"department": department,
		})
	}

	if check != nil {
		if err := check(queue.entries[index]); err != nil {
			qm.mu.Unlock()
			return nil, err
		}
	}

	now := qm.now()
	entry := queue.remove(index)
	if finalStatus == "completed" {
		entry.Status = dto.StatusCompleted
	}
	view := qm.queuedView(entry, now)
	qm.mu.Unlock()

	// Archivage hors verrou et hors chemin critique, best-effort
	if qm.archiver != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = qm.archiver.Archive(ctx, dto.HistoryRecord{
				PatientID:   entry.PatientID,
				Department:  entry.Department,
				RiskLevel:   entry.RiskLevel,
				ArrivalMode: entry.ArrivalMode,
				FinalStatus: finalStatus,
				ArrivalTime: entry.ArrivalTime,
				ArchivedAt:  now,
				WaitMinutes: view.WaitingMinutes,
				Vitals:      entry.Vitals,
			})
		}()
	}

	return &view, nil
}

func (qm *QueueManager) orderedViewLocked(queue *departmentQueue, now time.Time) []dto.QueuedPatient {
	view := make([]dto.QueuedPatient, len(queue.entries))
	for i, entry := range queue.entries {
		view[i] = qm.queuedView(entry, now)
	}

	sort.SliceStable(view, func(i, j int) bool {
		if view[i].PriorityScore != view[j].PriorityScore {
			return view[i].PriorityScore > view[j].PriorityScore
		}
		return view[i].ArrivalTime.Before(view[j].ArrivalTime)
	})

	return view
}

func (qm *QueueManager) queuedView(entry *dto.PatientEntry, now time.Time) dto.QueuedPatient {
	return dto.QueuedPatient{
		PatientEntry:   *entry,
		PriorityScore:  qm.calculator.Score(entry, now),
		WaitingMinutes: qm.calculator.WaitingMinutes(entry, now),
	}
}

func (qm *QueueManager) unknownDepartmentError(department string) *ServiceError {
	return NewNotFoundError("Service inconnu", map[string]interface{}{
		"department": department,
	})
}
