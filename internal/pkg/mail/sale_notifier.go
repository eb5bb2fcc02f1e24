package mail

import (
	"fmt"
	"log"
	"strings"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
)

// SaleNotifier emails a potter after a sale has been paid out.
type SaleNotifier struct {
	repos *repository.Repositories
}

func NewSaleNotifier(repos *repository.Repositories) *SaleNotifier {
	return &SaleNotifier{repos: repos}
}

// NotifySale is best-effort; failures are logged and swallowed.
func (n *SaleNotifier) NotifySale(potterID uint, t *models.PayoutTransfer) {
	potter, err := n.repos.Potter.GetByID(potterID)
	if err != nil {
		log.Printf("sale notifier: potter %d not found: %v", potterID, err)
		return
	}
	user, err := n.repos.User.GetByID(potter.UserID)
	if err != nil {
		log.Printf("sale notifier: user %d not found: %v", potter.UserID, err)
		return
	}

	currency := strings.ToUpper(t.Currency)
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>You just made a sale for %s %.2f.</p>"+
			"<p>After the %.1f%% marketplace commission of %s %.2f, "+
			"%s %.2f is on its way to your payout account.</p>",
		user.Name,
		currency, float64(t.AmountSubtotal)/100,
		t.CommissionPercent,
		currency, float64(t.CommissionAmount)/100,
		currency, float64(t.TransferAmount)/100,
	)
	if err := SendMail(user.Email, "You made a sale!", body); err != nil {
		log.Printf("sale notifier: send failed for potter %d: %v", potterID, err)
	}
}
