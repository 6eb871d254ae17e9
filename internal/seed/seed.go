// Package seed bootstraps an empty database with the portal's default
// accounts and starter announcements.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/repository"
	"github.com/Insper-Code/site-code/pkg/logger"
)

// Run seeds default data into empty tables. Tables that already hold rows
// are left alone, so repeated startups are safe.
func Run(ctx context.Context, users repository.UserRepository, announcements repository.AnnouncementRepository) error {
	if err := seedUsers(ctx, users); err != nil {
		return err
	}
	return seedAnnouncements(ctx, announcements)
}

func seedUsers(ctx context.Context, users repository.UserRepository) error {
	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"Admin Code", "admin@code.insper.edu.br", "admin123", domain.RoleAdmin},
		{"Membro Code", "membro@code.insper.edu.br", "membro123", domain.RoleMember},
	}

	now := time.Now()
	for _, d := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := &domain.User{
			ID:           uuid.New().String(),
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Role:         d.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", d.email, err)
		}
		logger.Get().Info("seeded default account",
			zap.String("email", d.email),
			zap.String("role", string(d.role)),
		)
	}
	return nil
}

func seedAnnouncements(ctx context.Context, announcements repository.AnnouncementRepository) error {
	count, err := announcements.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count announcements: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		title       string
		body        string
		category    domain.Category
		author      string
		publishedAt time.Time
	}{
		{
			title:       "Bem-vindo à área de membros!",
			body:        "Olá! Esta é a área exclusiva para membros do Insper Code. Aqui você encontrará avisos importantes, documentos e informações sobre eventos e projetos.",
			category:    domain.CategoryInformative,
			author:      "Admin Code",
			publishedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			title:       "Reunião semanal - Toda segunda às 19h",
			body:        "Lembramos que as reuniões semanais acontecem todas as segundas-feiras às 19h no Lab 404. A presença é obrigatória para todos os membros ativos.",
			category:    domain.CategoryImportant,
			author:      "Admin Code",
			publishedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			title:       "URGENTE: Prazo para entrega do projeto Help The Fox",
			body:        "O prazo final para entrega das melhorias do projeto Help The Fox é 20/01/2025. Por favor, certifique-se de fazer o commit final e atualizar a documentação.",
			category:    domain.CategoryUrgent,
			author:      "Gustavo Ribolla",
			publishedAt: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			title:       "Workshop de Unity - Próxima sexta",
			body:        "Teremos um workshop especial de Unity na próxima sexta-feira às 18h. O tema será \"Otimização de jogos WebGL\". Confirme sua presença!",
			category:    domain.CategoryInformative,
			author:      "Henrique Mayor",
			publishedAt: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, d := range defaults {
		a := &domain.Announcement{
			ID:          uuid.New().String(),
			Title:       d.title,
			Body:        d.body,
			Category:    d.category,
			Author:      d.author,
			PublishedAt: d.publishedAt,
		}
		if err := announcements.Create(ctx, a); err != nil {
			return fmt.Errorf("failed to seed announcement %q: %w", d.title, err)
		}
	}

	logger.Get().Info("seeded starter announcements", zap.Int("count", len(defaults)))
	return nil
}
