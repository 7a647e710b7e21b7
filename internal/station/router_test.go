package station

import "testing"

func TestRouterRoutesAllSixTitles(t *testing.T) {
	client, err := NewClient("http://localhost:8080", "token")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	router, err := NewRouter(client, NewSerialCounter(Config{}), "operator", nil, nil)
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	titles := []string{
		"Add Barcode",
		"Soldering",
		"Battery connection & Capacitor & add battery",
		"Frimware update",
		"QC check",
		"Print Sticker",
	}
	for _, title := range titles {
		ws, err := router.Route(title)
		if err != nil {
			t.Fatalf("route %q: %v", title, err)
		}
		if ws.WorkTitle() != title {
			t.Fatalf("route %q returned %q", title, ws.WorkTitle())
		}
	}
}

func TestRouterRejectsUnknownTitle(t *testing.T) {
	client, _ := NewClient("http://localhost:8080", "token")
	router, _ := NewRouter(client, NewSerialCounter(Config{}), "operator", nil, nil)
	if _, err := router.Route("Firmware update"); err == nil {
		t.Fatalf("corrected-spelling title must not route")
	}
}
