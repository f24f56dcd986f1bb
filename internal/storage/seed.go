package storage

import "github.com/magabrotheeeer/subscription-tracker/internal/models"

// defaultSubscriptions — встроенный набор примеров, используемый, когда
// недоступны ни сохранённые данные, ни резервный файл.
func defaultSubscriptions() []models.Subscription {
	return []models.Subscription{
		{
			ID:            1,
			ProductName:   "Office 365 Family",
			Accounts:      []string{"user1@example.com", "user2@example.com"},
			ExpiryDate:    "2024-12-25",
			ManagementURL: "https://account.microsoft.com/services/",
			Intention:     models.IntentionNone,
		},
		{
			ID:            2,
			ProductName:   "Adobe Creative Cloud",
			Accounts:      []string{"designer@company.com"},
			ExpiryDate:    "2024-01-15",
			ManagementURL: "https://account.adobe.com/",
			Intention:     models.IntentionNone,
		},
		{
			ID:            3,
			ProductName:   "Netflix Premium",
			Accounts:      []string{"family@example.com"},
			ExpiryDate:    "2024-01-01",
			ManagementURL: "https://www.netflix.com/account",
			Intention:     models.IntentionNone,
		},
	}
}
