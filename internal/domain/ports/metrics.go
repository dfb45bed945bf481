package ports

// Outcomes registrados para cada envio do formulário
const (
	SignupOutcomeCreated  = "created"
	SignupOutcomeUpdated  = "updated"
	SignupOutcomeRejected = "rejected"
)

// Metrics define os contadores de negócio expostos pela aplicação
type Metrics interface {
	SignupRecorded(outcome string)
	CheckoutCreated(discounted bool)
	CheckoutFailed(reason string)
}
