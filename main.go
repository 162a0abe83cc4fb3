package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"librairie/config"
	"librairie/database"
	"librairie/logger"
	"librairie/web"
	"librairie/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close database err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func seedCatalog(path string) {
	logger.InitLogger(logging.INFO)
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	bookService := service.BookService{}
	imported, err := bookService.ImportCatalog(path)
	if err != nil {
		fmt.Println("seed catalog failed:", err)
		return
	}
	fmt.Printf("imported %d books\n", imported)
}

func showSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	users, err := userService.GetUsers()
	if err != nil {
		fmt.Println("get users failed:", err)
		return
	}
	fmt.Println("port:", config.GetPort())
	fmt.Println("accounts:")
	for _, user := range users {
		fmt.Printf("  %s <%s> (%s)\n", user.Username, user.Email, user.Role)
	}
}

func updateSetting(username, password string) {
	logger.InitLogger(logging.INFO)
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	if err := userService.UpdateFirstUser(username, password); err != nil {
		fmt.Println("set username and password failed:", err)
	} else {
		fmt.Println("set username and password success")
	}
}

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: "librairie",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the storefront web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Import categories and books from a TOML catalog file",
		Run: func(cmd *cobra.Command, args []string) {
			file, _ := cmd.Flags().GetString("file")
			seedCatalog(file)
		},
	}
	seedCmd.Flags().String("file", "catalog.toml", "catalog file to import")

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect or update settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings and accounts",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Reset the first account's credentials",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			updateSetting(username, password)
		},
	}
	updateCmd.Flags().String("username", "", "set login username")
	updateCmd.Flags().String("password", "", "set login password")

	settingCmd.AddCommand(showCmd, updateCmd)
	rootCmd.AddCommand(runCmd, seedCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
