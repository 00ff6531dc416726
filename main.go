package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// @title 声明核查 API
// @version 1.0
// @description 提交声明，由带联网搜索的模型给出结论、可信度和来源，并提供历史记录与热门声明
// @host localhost:5001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "factcheck v1.0.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "factcheck",
	Short:         "声明核查服务",
	Long:          "提交一条声明，由带联网搜索的大模型评估真实性，保存结论、可信度、说明和来源。",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println(version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	rootCmd.AddCommand(serveCmd, checkCmd, versionCmd)
}

func main() {
	// .env 仅用于本地开发，不存在时忽略
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env 文件")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Printf("执行失败: %v", err)
		os.Exit(1)
	}
}
