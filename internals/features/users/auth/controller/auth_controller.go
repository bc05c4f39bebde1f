package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB      *gorm.DB
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB, svc *service.AuthService) *AuthController {
	return &AuthController{DB: db, Service: svc}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return ac.Service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return ac.Service.Login(ac.DB, c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return ac.Service.LoginGoogle(ac.DB, c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	return ac.Service.Me(ac.DB, c)
}
