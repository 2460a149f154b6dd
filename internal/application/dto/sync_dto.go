package dto

// SyncReport contadores do passe de reconciliação de vendedores.
// Uma segunda execução sobre dados inalterados devolve tudo zero.
type SyncReport struct {
	Success      bool     `json:"success"`
	Reattributed int      `json:"reattributed"`
	UsersCreated int      `json:"users_created"`
	Synced       int      `json:"synced"`
	Errors       []string `json:"errors,omitempty"`
}
