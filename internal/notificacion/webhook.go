package notificacion

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// SuscriptorWebhook publica el evento de cierre de importación a una URL
// externa. Es de mejor esfuerzo: el fallo se registra y nada más.
func SuscriptorWebhook(url string, log *logrus.Logger) func(ImportacionFinalizada) {
	return func(evt ImportacionFinalizada) {
		body, _ := json.Marshal(evt)

		resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
		if err != nil {
			log.WithError(err).Warn("error al enviar webhook de importación")
			return
		}
		defer resp.Body.Close()
	}
}
