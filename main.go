package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RichardKnop/machinery/v1"
	machineryconf "github.com/RichardKnop/machinery/v1/config"
	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/roadside-api/api"
	"github.com/bitmark-inc/roadside-api/coordinator"
	"github.com/bitmark-inc/roadside-api/events"
	"github.com/bitmark-inc/roadside-api/external/geoinfo"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/store"
	"github.com/bitmark-inc/roadside-api/utils"
)

var (
	server      *api.Server
	ormDB       *gorm.DB
	mongoClient *mongo.Client
	publisher   events.Publisher
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("roadside")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.socket.buffer", 64)
	viper.SetDefault("i18n.dir", "./i18n")
	viper.SetDefault("request.default_currency", "USD")
	viper.SetDefault("request.nearby_distance", 10000)
	viper.SetDefault("request.nearby_limit", 50)
	viper.SetDefault("chat.max_message_length", 1000)
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown mobile api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if publisher != nil {
			log.Info("Closing event publisher")
			if err := publisher.Close(); err != nil {
				log.Error(err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		if mongoClient != nil {
			log.Info("Shutting down mongo store")
			mongoClient.Disconnect(ctx)
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Loaded i18n messages")

	// Load JWT public key of the token issuer
	jwtKeyByte, err := ioutil.ReadFile(viper.GetString("jwt.keyfile"))
	if err != nil {
		log.Panic(err)
	}
	jwtPublicKey, err := jwt.ParseRSAPublicKeyFromPEM(jwtKeyByte)
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded jwt public key")

	// Init redis
	var conf = &machineryconf.Config{
		Broker:        viper.GetString("redis.conn"),
		DefaultQueue:  "roadside_background",
		ResultBackend: viper.GetString("redis.conn"),
	}
	machineryServer, err := machinery.NewServer(conf)
	if err != nil {
		log.Panic(err)
	}

	ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		log.Panic(err)
	}

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err = mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	publisher = events.Noop
	if brokers := viper.GetStringSlice("kafka.brokers"); len(brokers) > 0 {
		publisher, err = events.NewKafkaPublisher(brokers, viper.GetString("kafka.topic"))
		if err != nil {
			log.Panicf("create kafka publisher with error: %s", err)
		}
		log.WithField("prefix", "init").Info("Initialized kafka publisher")
	}

	var geo geoinfo.GeoInfo
	if apiKey := viper.GetString("geo.apikey"); apiKey != "" {
		geo, err = geoinfo.New(apiKey)
		if err != nil {
			log.Panic(err)
		}
		log.WithField("prefix", "init").Info("Initialized geocoding client")
	}

	accounts := store.NewRoadsideStore(ormDB)
	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))

	hub := realtime.NewHub(viper.GetInt("server.socket.buffer"), utils.NewLocalizer)
	coord := coordinator.New(mongoStore, accounts, hub, publisher, geo, coordinator.Config{
		DefaultCurrency:  viper.GetString("request.default_currency"),
		MaxMessageLength: viper.GetInt("chat.max_message_length"),
		NearbyDistance:   viper.GetInt("request.nearby_distance"),
		NearbyLimit:      viper.GetInt64("request.nearby_limit"),
	})

	// Init http server
	server = api.NewServer(accounts, mongoStore, coord, hub, jwtPublicKey, machineryServer)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
