package api

import (
	"context"
	"encoding/base64"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/chenBenjamin97/football-analyzer/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

//tagVideo runs the whole analysis of a video found in 'source' directory
var tagVideo = video.Tag

type runTrackingRequest struct {
	VideoBase64 string `json:"video_base64"`
}

func SetRouter() *gin.Engine {
	r := gin.Default()
	jobs := newJobRegistry()

	//serve html pages to client, when configured
	if static := viper.GetString("frontend.static-files-path"); static != "" {
		r.Static("/client", static)
	}

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "running", "service": "football-analyzer"})
	})

	apiRoutes := r.Group("/api")

	apiRoutes.POST("/run-tracking", func(ctx *gin.Context) {
		req := runTrackingRequest{}
		if err := ctx.ShouldBindJSON(&req); err != nil || req.VideoBase64 == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "video_base64 is required"})
			return
		}

		videoBytes, err := base64.StdEncoding.DecodeString(req.VideoBase64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "video_base64 is not valid base64"})
			return
		}

		srcVideoName := uuid.NewString() + "." + viper.GetString("video.prod_format")
		srcFilePath := path.Join(viper.GetString("directory.source"), srcVideoName)
		if err := ioutil.WriteFile(srcFilePath, videoBytes, 0644); err != nil {
			log.Printf("api/run-tracking: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}

		result, err := tagVideo(ctx.Request.Context(), srcVideoName)
		if err != nil {
			log.Printf("api/run-tracking: Error, got '%v'", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}

		outputVideoPath := path.Join(viper.GetString("directory.ready"), utils.TrimExt(srcVideoName)+"."+viper.GetString("video.prod_format"))
		outputBytes, err := ioutil.ReadFile(outputVideoPath)
		if err != nil {
			log.Printf("api/run-tracking: Could not read '%s' file, got '%v'", outputVideoPath, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":              "success",
			"name":                srcVideoName,
			"output_video_base64": base64.StdEncoding.EncodeToString(outputBytes),
			"possession":          result.Shares(),
			"team_model":          result.TeamModel,
		})
	})

	apiRoutes.GET("/ReadyVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.ready")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/UserUploadsVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if !validName(videoName) {
			ctx.Status(http.StatusNotAcceptable) //missing or invalid url parameter
			return
		}

		analyzed := ctx.Query("analyzed")
		if analyzed != "true" && analyzed != "false" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		var videoPath string
		if analyzed == "true" {
			videoPath = path.Join(viper.GetString("directory.ready"), videoName+"."+viper.GetString("video.prod_format"))
		} else {
			videoPath = path.Join(viper.GetString("directory.source"), videoName+"."+viper.GetString("video.prod_format"))
		}

		if status, ok := checkFile(videoPath); !ok {
			ctx.Status(status)
			return
		}

		ctx.Header("Content-Type", "video/mp4")
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	})

	apiRoutes.GET("/Tracks", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if !validName(videoName) {
			ctx.Status(http.StatusNotAcceptable) //missing or invalid url parameter
			return
		}

		if status, ok := checkFile(video.ResultPath(videoName)); !ok {
			ctx.Status(status)
			return
		}

		result, err := video.LoadResult(videoName)
		if err != nil {
			log.Printf("api/Tracks: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		ctx.JSON(http.StatusOK, result)
	})

	apiRoutes.GET("/Report", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if !validName(videoName) {
			ctx.Status(http.StatusNotAcceptable) //missing or invalid url parameter
			return
		}

		reportPath, ok := video.ReportPath(videoName, ctx.DefaultQuery("kind", "possession"))
		if !ok {
			ctx.Status(http.StatusNotAcceptable)
			return
		}

		if status, ok := checkFile(reportPath); !ok {
			ctx.Status(status)
			return
		}

		ctx.File(reportPath)
	})

	apiRoutes.POST("/Upload", func(ctx *gin.Context) {
		file, fHeader, err := ctx.Request.FormFile("video")
		if err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		defer file.Close()

		if existNames, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		} else {
			if utils.InSlice(fHeader.Filename, existNames) {
				ctx.Status(http.StatusNotAcceptable)
				return
			}
		}

		log.Printf("api/Upload: Recived new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

		fileBytes, err := ioutil.ReadAll(file)
		if err != nil {
			log.Printf("api/Upload: Could not read request's body, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		srcFilePath := path.Join(viper.GetString("directory.source"), fHeader.Filename)

		if err = ioutil.WriteFile(srcFilePath, fileBytes, 0444); err != nil {
			log.Printf("api/Upload: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		job := jobs.start(fHeader.Filename)
		go func() {
			result, err := tagVideo(context.Background(), fHeader.Filename)
			jobs.finish(job.ID, result, err)
		}()

		ctx.JSON(http.StatusAccepted, job)
	})

	apiRoutes.GET("/Jobs/:id", func(ctx *gin.Context) {
		job, ok := jobs.get(ctx.Param("id"))
		if !ok {
			ctx.Status(http.StatusNotFound)
			return
		}

		ctx.JSON(http.StatusOK, job)
	})

	return r
}

//checkFile returns the http status to answer with when given file can not be served
func checkFile(p string) (int, bool) {
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return http.StatusNotFound, false
		}
		return http.StatusInternalServerError, false
	}
	return http.StatusOK, true
}

//validName accepts a plain file name only, so a query value can not leave the configured directories
func validName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
