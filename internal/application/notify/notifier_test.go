package notify

import (
	"testing"
	"time"
)

func TestPublishReplacesCurrent(t *testing.T) {
	n := New()
	n.Success("Criado", "Novo registro adicionado.")
	n.Alert("Erro", "Não foi possível salvar no banco de dados.")

	got := n.Current()
	if got == nil {
		t.Fatal("expected a current notification")
	}
	if got.Title != "Erro" || got.Kind != KindAlert {
		t.Errorf("current = %+v, want the alert", got)
	}
}

func TestAutoDismiss(t *testing.T) {
	n := NewWithTTL(50 * time.Millisecond)
	n.Success("Atualizado", "Registro salvo com sucesso.")

	if n.Current() == nil {
		t.Fatal("notification should be visible right after publish")
	}

	deadline := time.Now().Add(2 * time.Second)
	for n.Current() != nil {
		if time.Now().After(deadline) {
			t.Fatal("notification never auto-dismissed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestReplacementRestartsTimer(t *testing.T) {
	n := NewWithTTL(150 * time.Millisecond)
	n.Success("Criado", "Novo registro adicionado.")

	// Replace just before the first timer would fire. The stale timer
	// must not dismiss the replacement.
	time.Sleep(100 * time.Millisecond)
	n.Success("Atualizado", "Registro salvo com sucesso.")

	time.Sleep(100 * time.Millisecond)
	got := n.Current()
	if got == nil {
		t.Fatal("replacement dismissed by the stale timer")
	}
	if got.Title != "Atualizado" {
		t.Errorf("current = %+v, want the replacement", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for n.Current() != nil {
		if time.Now().After(deadline) {
			t.Fatal("replacement never auto-dismissed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDismissClearsImmediately(t *testing.T) {
	n := New()
	n.Alert("Removido", "Registro excluído do banco de dados.")
	n.Dismiss()
	if n.Current() != nil {
		t.Error("expected no notification after dismiss")
	}
}
