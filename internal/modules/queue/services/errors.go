package services

import "fmt"

// ServiceError - Erreur métier commune pour tous les services du module queue
type ServiceError struct {
	Type    string                 `json:"type"` // "validation", "not_found", "conflict"
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewValidationError construit une erreur de validation
func NewValidationError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: "validation", Message: message, Details: details}
}

// NewNotFoundError construit une erreur de ressource introuvable
func NewNotFoundError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: "not_found", Message: message, Details: details}
}

// NewConflictError construit une erreur de conflit d'état
func NewConflictError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: "conflict", Message: message, Details: details}
}

// NewDuplicateEntryError doublon de patient_id dans une même file
func NewDuplicateEntryError(patientID, department string) *ServiceError {
	return NewValidationError(
		fmt.Sprintf("Patient %s déjà présent dans la file %s", patientID, department),
		map[string]interface{}{
			"patient_id": patientID,
			"department": department,
		},
	)
}
