package events

import "testing"

func TestNilPublisherDropsEvents(t *testing.T) {
	var p *Publisher

	// Must not panic and must not block when no broker is configured.
	p.PackageStatusChanged("ARD00000130127", 1, 2, 42, "Received at warehouse")
	p.ContainerStatusChanged(7, 1, 2, 42, "")
	p.BatchUnlocked(3, 42)
}

func TestPublisherWithoutClientDropsEvents(t *testing.T) {
	p := NewPublisher(nil, "backoffice.events")

	if err := p.publish(RoutingKeyPackageStatusChanged, struct{}{}); err != nil {
		t.Errorf("Expected clientless publish to be a no-op, got %v", err)
	}
}
