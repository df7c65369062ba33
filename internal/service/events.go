package service

// Event names published when setup state changes
const (
	EventVATSettingCreated = "oman_vat_setting.created"
	EventVATSettingDeleted = "oman_vat_setting.deleted"
	EventTaxTemplatesReady = "tax_templates.imported"
)

// EventPublisher fans setup events out to connected clients.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
